package partner

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/domain/trade"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Email     string                 `json:"email" binding:"required,email,max=254"`
	FirstName string                 `json:"first_name" binding:"max=256"`
	LastName  string                 `json:"last_name" binding:"max=256"`
	Phone     string                 `json:"phone" binding:"max=50"`
	Note      string                 `json:"note"`
	Metadata  []partner.MetadataItem `json:"metadata"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID              `json:"id"`
	Email          string                 `json:"email"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	FullName       string                 `json:"full_name"`
	IsActive       bool                   `json:"is_active"`
	DateJoined     time.Time              `json:"date_joined"`
	Note           string                 `json:"note,omitempty"`
	Phone          string                 `json:"phone,omitempty"`
	Metadata       []partner.MetadataItem `json:"metadata"`
	NumberOfOrders int                    `json:"number_of_orders"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	metadata := c.Metadata
	if metadata == nil {
		metadata = []partner.MetadataItem{}
	}
	return CustomerResponse{
		ID:             c.ID,
		Email:          c.Email,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		FullName:       c.FullName(),
		IsActive:       c.IsActive,
		DateJoined:     c.DateJoined,
		Note:           c.Note,
		Phone:          c.Phone(),
		Metadata:       metadata,
		NumberOfOrders: c.NumberOfOrders,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// SortState is the active sort of the list
type SortState struct {
	Field partner.CustomerListURLSortField `json:"field"`
	Asc   bool                             `json:"asc"`
}

// FilterTabSummary is a saved tab as listed next to the customer list
type FilterTabSummary struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Data  string `json:"data"`
}

// CustomerListResult is one page of the customer list plus its filter state
type CustomerListResult struct {
	Items           []CustomerResponse              `json:"items"`
	Total           int64                           `json:"total"`
	Page            int                             `json:"page"`
	PageSize        int                             `json:"page_size"`
	TotalPages      int                             `json:"total_pages"`
	Sort            SortState                       `json:"sort"`
	FilterOpts      partner.CustomerListFilterOpts  `json:"filter_opts"`
	FilterStructure []partner.CustomerFilterElement `json:"filter_structure"`
	FiltersApplied  bool                            `json:"filters_applied"`
	CurrentTab      int                             `json:"current_tab"`
	Tabs            []FilterTabSummary              `json:"tabs"`
}

// FilterPanelResponse is the filter panel for the current list URL
type FilterPanelResponse struct {
	Opts      partner.CustomerListFilterOpts  `json:"opts"`
	Structure []partner.CustomerFilterElement `json:"structure"`
	// Query is the URL query the panel round-trips to
	Query string `json:"query"`
}

// SortNavigation is the target of a column sort click
type SortNavigation struct {
	URL     string `json:"url"`
	Replace bool   `json:"replace"`
}

// OrderSummaryResponse is an order as listed on the customer details page
type OrderSummaryResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	Created       time.Time           `json:"created"`
	Status        trade.OrderStatus   `json:"status"`
	PaymentStatus trade.PaymentStatus `json:"payment_status"`
	TotalGross    valueobject.Money   `json:"total_gross"`
}

// CustomerDetailsResponse is a customer with its most recent orders
type CustomerDetailsResponse struct {
	Customer    CustomerResponse       `json:"customer"`
	LastOrders  []OrderSummaryResponse `json:"last_orders"`
	ViewAllHref string                 `json:"view_all_href"`
	TotalOrders int64                  `json:"total_orders"`
}

// CustomerOrdersHref links to the order list filtered to a customer's email
func CustomerOrdersHref(email string) string {
	return "/orders?" + url.Values{"customer": {email}}.Encode()
}

// =============================================================================
// Filter tab DTOs
// =============================================================================

// SaveFilterTabRequest stores the current filters under a name
type SaveFilterTabRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Data string `json:"data"`
}

// =============================================================================
// Export DTOs
// =============================================================================

// ExportResult locates a generated customer export
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Rows      int       `json:"rows"`
	Truncated bool      `json:"truncated"`
}
