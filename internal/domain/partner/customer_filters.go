package partner

import (
	"net/url"

	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/shared"
)

// CustomerFilterKey names an element of the customer list filter panel
type CustomerFilterKey string

const (
	CustomerFilterKeyJoined         CustomerFilterKey = "joined"
	CustomerFilterKeyNumberOfOrders CustomerFilterKey = "orders"
	CustomerFilterKeyPhone          CustomerFilterKey = "phone"
)

// URL query keys of the customer list
const (
	URLKeyJoinedFrom         = "joinedFrom"
	URLKeyJoinedTo           = "joinedTo"
	URLKeyNumberOfOrdersFrom = "numberOfOrdersFrom"
	URLKeyNumberOfOrdersTo   = "numberOfOrdersTo"
	URLKeyPhone              = "phone"
	URLKeyQuery              = "query"
)

// CustomerFiltersKey is the storage key of the saved customer filter tabs
const CustomerFiltersKey = "customerFilters"

var customerFilterUtils = shared.NewFilterUtils(
	URLKeyJoinedFrom,
	URLKeyJoinedTo,
	URLKeyNumberOfOrdersFrom,
	URLKeyNumberOfOrdersTo,
	URLKeyPhone,
	URLKeyQuery,
)

// CustomerListURLFilters is the filter part of the customer list URL.
// A nil field is absent; empty query values are treated as absent.
type CustomerListURLFilters struct {
	JoinedFrom         *string `json:"joinedFrom,omitempty" yaml:"joinedFrom,omitempty"`
	JoinedTo           *string `json:"joinedTo,omitempty" yaml:"joinedTo,omitempty"`
	NumberOfOrdersFrom *string `json:"numberOfOrdersFrom,omitempty" yaml:"numberOfOrdersFrom,omitempty"`
	NumberOfOrdersTo   *string `json:"numberOfOrdersTo,omitempty" yaml:"numberOfOrdersTo,omitempty"`
	Phone              *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Query              *string `json:"query,omitempty" yaml:"query,omitempty"`
}

// ParseCustomerListURLFilters reads the filter keys from a list URL query
func ParseCustomerListURLFilters(params url.Values) CustomerListURLFilters {
	return CustomerListURLFilters{
		JoinedFrom:         optional(params, URLKeyJoinedFrom),
		JoinedTo:           optional(params, URLKeyJoinedTo),
		NumberOfOrdersFrom: optional(params, URLKeyNumberOfOrdersFrom),
		NumberOfOrdersTo:   optional(params, URLKeyNumberOfOrdersTo),
		Phone:              optional(params, URLKeyPhone),
		Query:              optional(params, URLKeyQuery),
	}
}

// Values encodes the present filters back into URL query values
func (f CustomerListURLFilters) Values() url.Values {
	params := url.Values{}
	for key, value := range map[string]*string{
		URLKeyJoinedFrom:         f.JoinedFrom,
		URLKeyJoinedTo:           f.JoinedTo,
		URLKeyNumberOfOrdersFrom: f.NumberOfOrdersFrom,
		URLKeyNumberOfOrdersTo:   f.NumberOfOrdersTo,
		URLKeyPhone:              f.Phone,
		URLKeyQuery:              f.Query,
	} {
		if value != nil && *value != "" {
			params.Set(key, *value)
		}
	}
	return params
}

// CustomerListFilterOpts is the filter panel state of the customer list
type CustomerListFilterOpts struct {
	Joined         shared.FilterOpts[shared.MinMax] `json:"joined"`
	NumberOfOrders shared.FilterOpts[shared.MinMax] `json:"numberOfOrders"`
	Phone          shared.FilterOpts[string]        `json:"phone"`
}

// GetFilterOpts derives the filter panel state from the URL filters
func GetFilterOpts(params CustomerListURLFilters) CustomerListFilterOpts {
	return CustomerListFilterOpts{
		Joined:         shared.NewRangeFilterOpts(params.JoinedFrom, params.JoinedTo),
		NumberOfOrders: shared.NewRangeFilterOpts(params.NumberOfOrdersFrom, params.NumberOfOrdersTo),
		Phone:          shared.NewTextFilterOpts(params.Phone),
	}
}

// MetadataFilter matches customers carrying a metadata key with the given value
type MetadataFilter struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// CustomerFilterInput is the filter sent to the customer query
type CustomerFilterInput struct {
	DateJoined     *shared.GteLte[string] `json:"dateJoined,omitempty" yaml:"dateJoined,omitempty"`
	NumberOfOrders *shared.GteLte[int]    `json:"numberOfOrders,omitempty" yaml:"numberOfOrders,omitempty"`
	Search         string                 `json:"search,omitempty" yaml:"search,omitempty"`
	Metadata       []MetadataFilter       `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// GetFilterVariables translates URL filters into query filter variables.
// Unparsable order counts are open bounds.
func GetFilterVariables(params CustomerListURLFilters) CustomerFilterInput {
	input := CustomerFilterInput{
		DateJoined: shared.NewGteLte(params.JoinedFrom, params.JoinedTo),
		NumberOfOrders: shared.NewGteLte(
			shared.ParseIntBound(params.NumberOfOrdersFrom),
			shared.ParseIntBound(params.NumberOfOrdersTo),
		),
	}
	if params.Query != nil {
		input.Search = *params.Query
	}
	if params.Phone != nil && *params.Phone != "" {
		input.Metadata = []MetadataFilter{{Key: MetadataKeyPhone, Value: *params.Phone}}
	}
	return input
}

// RestrictFilterVariables drops variables the principal may not filter on
func RestrictFilterVariables(input CustomerFilterInput, userPermissions []string) CustomerFilterInput {
	if !identity.HasPermissions(userPermissions, identity.Codes(identity.PermissionManageOrders)) {
		input.NumberOfOrders = nil
	}
	return input
}

// CustomerFilterElement is one element of the customer filter panel
type CustomerFilterElement = shared.FilterElement[CustomerFilterKey]

// GetFilterQueryParam maps a filter panel element back to its URL keys
func GetFilterQueryParam(el CustomerFilterElement) url.Values {
	switch el.Name {
	case CustomerFilterKeyJoined:
		return shared.MinMaxQueryParam(el, URLKeyJoinedFrom, URLKeyJoinedTo)
	case CustomerFilterKeyNumberOfOrders:
		return shared.MinMaxQueryParam(el, URLKeyNumberOfOrdersFrom, URLKeyNumberOfOrdersTo)
	case CustomerFilterKeyPhone:
		return shared.SingleValueQueryParam(el, URLKeyPhone)
	}
	return url.Values{}
}

// CreateFilterStructure builds the filter panel for a principal.
// Elements whose permissions the principal lacks are left out.
func CreateFilterStructure(opts CustomerListFilterOpts, userPermissions []string) []CustomerFilterElement {
	joined := shared.NewDateField(CustomerFilterKeyJoined, "Join Date", opts.Joined.Value)
	joined.Active = opts.Joined.Active

	orders := shared.NewNumberField(CustomerFilterKeyNumberOfOrders, "Number of Orders", opts.NumberOfOrders.Value)
	orders.Active = opts.NumberOfOrders.Active
	orders.Permissions = identity.Codes(identity.PermissionManageOrders)

	phone := shared.NewTextField(CustomerFilterKeyPhone, "Phone Number", opts.Phone.Value)
	phone.Active = opts.Phone.Active

	elements := make([]CustomerFilterElement, 0, 3)
	for _, el := range []CustomerFilterElement{joined, orders, phone} {
		if identity.HasPermissions(userPermissions, el.Permissions) {
			elements = append(elements, el)
		}
	}
	return elements
}

// FilterStructureQuery converts a whole filter panel back into URL filters
func FilterStructureQuery(elements []CustomerFilterElement) url.Values {
	params := url.Values{}
	for _, el := range elements {
		for key, values := range GetFilterQueryParam(el) {
			params[key] = values
		}
	}
	return params
}

// GetActiveFilters returns the subset of params that are customer filter keys
func GetActiveFilters(params url.Values) url.Values {
	return customerFilterUtils.GetActiveFilters(params)
}

// AreFiltersApplied reports whether any customer filter carries a value
func AreFiltersApplied(params url.Values) bool {
	return customerFilterUtils.AreFiltersApplied(params)
}

// GetFiltersCurrentTab resolves the selected saved filter tab
func GetFiltersCurrentTab(params url.Values, tabs []FilterTab) int {
	return customerFilterUtils.GetFiltersCurrentTab(params, len(tabs))
}

func optional(params url.Values, key string) *string {
	v := params.Get(key)
	if v == "" {
		return nil
	}
	return &v
}
