package shared

import (
	"net/url"
	"strconv"
)

// Sort is the sort state of a list view
type Sort[T ~string] struct {
	Field T
	Asc   bool
}

// NextSort returns the sort state after the user picks field:
// picking the current field flips the direction, a new field starts ascending.
func NextSort[T ~string](field T, current Sort[T]) Sort[T] {
	if field == current.Field {
		return Sort[T]{Field: field, Asc: !current.Asc}
	}
	return Sort[T]{Field: field, Asc: true}
}

// Pagination is the page cursor carried in a list URL
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultInitialPagination is the cursor applied whenever filters or sorting change
var DefaultInitialPagination = Pagination{}

// PageParam and PageSizeParam are the URL keys of the page cursor
const (
	PageParam     = "page"
	PageSizeParam = "page_size"
)

// Apply writes the cursor into params. Zero fields remove their key.
func (p Pagination) Apply(params url.Values) {
	if p.Page > 0 {
		params.Set(PageParam, strconv.Itoa(p.Page))
	} else {
		params.Del(PageParam)
	}
	if p.PageSize > 0 {
		params.Set(PageSizeParam, strconv.Itoa(p.PageSize))
	}
}
