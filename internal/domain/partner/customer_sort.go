package partner

import (
	"net/url"
	"strconv"

	"github.com/shopdash/backend/internal/domain/shared"
)

// CustomerListURLSortField is a sortable column of the customer list
type CustomerListURLSortField string

const (
	CustomerSortFieldName   CustomerListURLSortField = "name"
	CustomerSortFieldEmail  CustomerListURLSortField = "email"
	CustomerSortFieldOrders CustomerListURLSortField = "orders"
)

// URL query keys of the sort state
const (
	URLKeySort = "sort"
	URLKeyAsc  = "asc"
)

// CustomerSort is the sort state of the customer list
type CustomerSort = shared.Sort[CustomerListURLSortField]

// DefaultCustomerSort is applied when the URL carries no valid sort field
var DefaultCustomerSort = CustomerSort{Field: CustomerSortFieldName, Asc: true}

// ParseCustomerListURLSortField returns the field and whether it is known
func ParseCustomerListURLSortField(s string) (CustomerListURLSortField, bool) {
	switch f := CustomerListURLSortField(s); f {
	case CustomerSortFieldName, CustomerSortFieldEmail, CustomerSortFieldOrders:
		return f, true
	}
	return "", false
}

// ParseCustomerSort reads the sort state from a list URL.
// A missing or malformed asc flag means ascending.
func ParseCustomerSort(params url.Values) CustomerSort {
	field, ok := ParseCustomerListURLSortField(params.Get(URLKeySort))
	if !ok {
		return DefaultCustomerSort
	}
	asc := true
	if raw := params.Get(URLKeyAsc); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			asc = b
		}
	}
	return CustomerSort{Field: field, Asc: asc}
}

// GetSortURLVariables returns the sort keys after the user picks field.
// The sort shown to the user (DefaultCustomerSort when the URL has none)
// toggles; any other pick starts ascending.
func GetSortURLVariables(field CustomerListURLSortField, params url.Values) url.Values {
	next := shared.NextSort(field, ParseCustomerSort(params))
	return url.Values{
		URLKeySort: {string(next.Field)},
		URLKeyAsc:  {strconv.FormatBool(next.Asc)},
	}
}

// CreateURLFunc renders list URL params into a navigable URL
type CreateURLFunc func(params url.Values) string

// SortHandler resolves a column click into the URL to navigate to.
// ok is false for unknown fields, which leave the view untouched.
type SortHandler func(field string) (target string, ok bool)

// CreateSortHandler builds the sort handler for the current list params.
// The returned URL keeps the filters, applies the next sort state and resets
// pagination; callers navigate to it with replace semantics.
func CreateSortHandler(createURL CreateURLFunc, params url.Values) SortHandler {
	return func(field string) (string, bool) {
		sortField, ok := ParseCustomerListURLSortField(field)
		if !ok {
			return "", false
		}

		next := url.Values{}
		for key, values := range params {
			next[key] = append([]string(nil), values...)
		}
		for key, values := range GetSortURLVariables(sortField, params) {
			next[key] = values
		}
		shared.DefaultInitialPagination.Apply(next)

		return createURL(next), true
	}
}

// CustomerListURL renders a customer list URL under path
func CustomerListURL(path string) CreateURLFunc {
	return func(params url.Values) string {
		if len(params) == 0 {
			return path
		}
		return path + "?" + params.Encode()
	}
}
