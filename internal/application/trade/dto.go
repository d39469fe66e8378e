package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/domain/trade"
)

// =============================================================================
// Order DTOs
// =============================================================================

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	// Customer matches the customer's email or name
	Customer string `form:"customer"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        int                 `json:"number"`
	DisplayNumber string              `json:"display_number"`
	CustomerID    *uuid.UUID          `json:"customer_id,omitempty"`
	UserEmail     string              `json:"user_email"`
	Status        trade.OrderStatus   `json:"status"`
	ChargeStatus  trade.ChargeStatus  `json:"charge_status"`
	PaymentStatus trade.PaymentStatus `json:"payment_status"`
	TotalGross    valueobject.Money   `json:"total_gross"`
	TotalNet      valueobject.Money   `json:"total_net"`
	Created       time.Time           `json:"created"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		DisplayNumber: o.DisplayNumber(),
		CustomerID:    o.CustomerID,
		UserEmail:     o.UserEmail,
		Status:        o.Status,
		ChargeStatus:  o.ChargeStatus,
		PaymentStatus: trade.TransformPaymentStatus(o.ChargeStatus),
		TotalGross:    o.TotalGross,
		TotalNet:      o.TotalNet,
		Created:       o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// =============================================================================
// Customer orders card
// =============================================================================

// Column headers of the customer orders card
var CustomerOrdersColumns = []string{
	"No. of Order",
	"Date",
	"Prep Status",
	"Status",
	"Total",
}

// CustomerOrderRow is one order of the customer orders card
type CustomerOrderRow struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	Created       time.Time           `json:"created"`
	PrepStatus    string              `json:"prep_status"`
	PaymentStatus trade.PaymentStatus `json:"payment_status"`
	TotalGross    valueobject.Money   `json:"total_gross"`
	Href          string              `json:"href"`
}

// CustomerOrdersCard is the "Recent Orders" card of the customer details page
type CustomerOrdersCard struct {
	Title        string             `json:"title"`
	ViewAllLabel string             `json:"view_all_label"`
	ViewAllHref  string             `json:"view_all_href"`
	Columns      []string           `json:"columns"`
	Rows         []CustomerOrderRow `json:"rows"`
	EmptyMessage string             `json:"empty_message,omitempty"`
}

// =============================================================================
// Prep status view
// =============================================================================

// PrepStatusState is the load state of an order's prep status
type PrepStatusState string

const (
	PrepStatusLoading PrepStatusState = "loading"
	PrepStatusError   PrepStatusState = "error"
	PrepStatusSuccess PrepStatusState = "success"
)

// Pill is a colored status label
type Pill struct {
	Color trade.PillColor `json:"color"`
	Label string          `json:"label"`
}

// PrepStatusView is the prep status header of the order details page
type PrepStatusView struct {
	Header      string          `json:"header"`
	State       PrepStatusState `json:"state"`
	Message     string          `json:"message,omitempty"`
	OrderStatus string          `json:"order_status,omitempty"`
	Pill        *Pill           `json:"pill,omitempty"`
}
