package persistence

import (
	"strings"

	"github.com/shopdash/backend/internal/domain/partner"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "DESC" if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist.
// Returns defaultField if the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductTypeSortFields contains allowed sort fields for product types
var ProductTypeSortFields = map[string]bool{
	"id":                   true,
	"created_at":           true,
	"updated_at":           true,
	"name":                 true,
	"slug":                 true,
	"kind":                 true,
	"is_shipping_required": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"number":        true,
	"status":        true,
	"charge_status": true,
	"user_email":    true,
}

// customerSortColumns maps a customer list sort field to its ORDER BY columns
var customerSortColumns = map[partner.CustomerListURLSortField][]string{
	partner.CustomerSortFieldName:   {"customers.last_name", "customers.first_name"},
	partner.CustomerSortFieldEmail:  {"customers.email"},
	partner.CustomerSortFieldOrders: {"number_of_orders"},
}

// CustomerOrderBy renders the ORDER BY clause for a customer list sort.
// Unknown fields fall back to the default sort; id breaks ties.
func CustomerOrderBy(sort partner.CustomerSort) string {
	columns, ok := customerSortColumns[sort.Field]
	if !ok {
		sort = partner.DefaultCustomerSort
		columns = customerSortColumns[sort.Field]
	}
	dir := "DESC"
	if sort.Asc {
		dir = "ASC"
	}
	parts := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, "customers.id "+dir)
	return strings.Join(parts, ", ")
}
