package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
)

// CustomerQuery is a filtered, sorted page request against the customer list
type CustomerQuery struct {
	Filter   CustomerFilterInput
	Sort     CustomerSort
	Page     int
	PageSize int
}

// Offset returns the row offset of the page
func (q CustomerQuery) Offset() int {
	return shared.Filter{Page: q.Page, PageSize: q.PageSize}.Offset()
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByIDForTenant finds a customer by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindAllForTenant finds one page of customers matching the query
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, query CustomerQuery) ([]Customer, error)

	// CountForTenant counts customers matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter CustomerFilterInput) (int64, error)

	// ExistsByEmail checks if a customer with the email exists
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// DeleteForTenant deletes a customer within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
