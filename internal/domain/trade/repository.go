package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderFilter selects a page of orders
type OrderFilter struct {
	// Customer matches the customer's email or name, case-insensitively
	Customer string
	Page     int
	PageSize int
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByIDForTenant finds an order by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByCustomer returns the newest orders of a customer, at most limit
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Order, error)

	// FindAllForTenant finds a page of orders, newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) ([]Order, error)

	// CountForTenant counts orders matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) (int64, error)

	// CountByCustomer counts all orders of a customer
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error
}
