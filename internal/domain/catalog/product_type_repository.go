package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
)

// ProductTypeRepository defines the interface for product type persistence
type ProductTypeRepository interface {
	// FindByIDForTenant finds a product type by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProductType, error)

	// FindAllForTenant finds product types for a tenant; Search matches the name
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductType, error)

	// CountForTenant counts product types matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsBySlug checks if a slug is already taken within a tenant
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)

	// Save creates or updates a product type
	Save(ctx context.Context, productType *ProductType) error

	// DeleteForTenant deletes a product type within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
