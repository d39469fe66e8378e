package shared

import (
	"net/url"
	"strconv"
)

// MinMax is a range filter value as typed in the filter panel
type MinMax struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// FilterOpts is the in-memory state of a single list filter
type FilterOpts[T any] struct {
	Active bool `json:"active"`
	Value  T    `json:"value"`
}

// NewRangeFilterOpts builds range opts from optional URL bounds.
// The filter is active iff at least one bound is present.
func NewRangeFilterOpts(from, to *string) FilterOpts[MinMax] {
	return FilterOpts[MinMax]{
		Active: from != nil || to != nil,
		Value: MinMax{
			Min: deref(from),
			Max: deref(to),
		},
	}
}

// NewTextFilterOpts builds scalar opts; the filter is active iff the value is non-empty.
func NewTextFilterOpts(value *string) FilterOpts[string] {
	v := deref(value)
	return FilterOpts[string]{Active: v != "", Value: v}
}

// GteLte is an inclusive range sent to the API. Nil bounds are open.
type GteLte[T any] struct {
	Gte *T `json:"gte,omitempty" yaml:"gte,omitempty"`
	Lte *T `json:"lte,omitempty" yaml:"lte,omitempty"`
}

// NewGteLte returns nil when both bounds are open.
func NewGteLte[T any](gte, lte *T) *GteLte[T] {
	if gte == nil && lte == nil {
		return nil
	}
	return &GteLte[T]{Gte: gte, Lte: lte}
}

// ParseIntBound parses a base-10 bound. Empty or malformed input is an open bound.
func ParseIntBound(s *string) *int {
	if s == nil || *s == "" {
		return nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil
	}
	return &n
}

// FieldType is the kind of control a filter element renders as
type FieldType string

const (
	FieldTypeDate   FieldType = "date"
	FieldTypeNumber FieldType = "number"
	FieldTypeText   FieldType = "text"
)

// FilterElement is one entry of a list view's filter panel
type FilterElement[K ~string] struct {
	Name        K         `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Active      bool      `json:"active"`
	Multiple    bool      `json:"multiple"`
	Value       []string  `json:"value"`
	Permissions []string  `json:"permissions,omitempty"`
}

// NewDateField creates a date range element. It is multiple unless both ends are equal.
func NewDateField[K ~string](name K, label string, value MinMax) FilterElement[K] {
	return FilterElement[K]{
		Name:     name,
		Label:    label,
		Type:     FieldTypeDate,
		Multiple: value.Min != value.Max,
		Value:    []string{value.Min, value.Max},
	}
}

// NewNumberField creates a number range element
func NewNumberField[K ~string](name K, label string, value MinMax) FilterElement[K] {
	el := NewDateField(name, label, value)
	el.Type = FieldTypeNumber
	return el
}

// NewTextField creates a single value text element
func NewTextField[K ~string](name K, label string, value string) FilterElement[K] {
	return FilterElement[K]{
		Name:  name,
		Label: label,
		Type:  FieldTypeText,
		Value: []string{value},
	}
}

// MinMaxQueryParam converts a range element back into its URL keys.
// An exact (non-multiple) value is written to both ends.
func MinMaxQueryParam[K ~string](el FilterElement[K], fromKey, toKey string) url.Values {
	params := url.Values{}
	if !el.Active {
		return params
	}
	from := valueAt(el.Value, 0)
	to := from
	if el.Multiple {
		to = valueAt(el.Value, 1)
	}
	setIfPresent(params, fromKey, from)
	setIfPresent(params, toKey, to)
	return params
}

// SingleValueQueryParam converts a scalar element back into its URL key
func SingleValueQueryParam[K ~string](el FilterElement[K], key string) url.Values {
	params := url.Values{}
	if !el.Active {
		return params
	}
	setIfPresent(params, key, valueAt(el.Value, 0))
	return params
}

// FilterUtils answers questions about the filter keys present in a list URL
type FilterUtils struct {
	keys []string
}

// NewFilterUtils creates utils for the given URL filter keys
func NewFilterUtils(keys ...string) FilterUtils {
	return FilterUtils{keys: keys}
}

// GetActiveFilters returns the subset of params that are filter keys
func (u FilterUtils) GetActiveFilters(params url.Values) url.Values {
	active := url.Values{}
	for _, key := range u.keys {
		if vals, ok := params[key]; ok {
			active[key] = vals
		}
	}
	return active
}

// AreFiltersApplied reports whether any filter key carries a non-empty value
func (u FilterUtils) AreFiltersApplied(params url.Values) bool {
	for key := range u.GetActiveFilters(params) {
		if params.Get(key) != "" {
			return true
		}
	}
	return false
}

// GetFiltersCurrentTab resolves the selected filter tab.
// Without an explicit activeTab, applied filters select the synthetic
// "custom" tab after the saved ones, otherwise the "all" tab (0).
func (u FilterUtils) GetFiltersCurrentTab(params url.Values, savedTabs int) int {
	if raw := params.Get(ActiveTabParam); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	if u.AreFiltersApplied(params) {
		return savedTabs + 1
	}
	return 0
}

// ActiveTabParam is the URL key of the selected filter tab
const ActiveTabParam = "activeTab"

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
