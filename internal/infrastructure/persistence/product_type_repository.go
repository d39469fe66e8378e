package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/infrastructure/persistence/models"
	"github.com/shopdash/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormProductTypeRepository implements catalog.ProductTypeRepository using GORM
type GormProductTypeRepository struct {
	db *gorm.DB
}

// NewGormProductTypeRepository creates a new GormProductTypeRepository
func NewGormProductTypeRepository(db *gorm.DB) *GormProductTypeRepository {
	return &GormProductTypeRepository{db: db}
}

// FindByIDForTenant finds a product type by ID within a tenant
func (r *GormProductTypeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ProductType, error) {
	var model models.ProductTypeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find product type: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds product types for a tenant
func (r *GormProductTypeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.ProductType, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductTypeModel{}), tenantID, filter)

	orderBy := ValidateSortField(filter.OrderBy, ProductTypeSortFields, "name")
	orderDir := "ASC"
	if filter.OrderBy != "" {
		orderDir = ValidateSortOrder(filter.OrderDir)
	}
	query = query.Order(orderBy + " " + orderDir).Order("id ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var typeModels []models.ProductTypeModel
	if err := query.Find(&typeModels).Error; err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}

	productTypes := make([]catalog.ProductType, len(typeModels))
	for i := range typeModels {
		productTypes[i] = *typeModels[i].ToDomain()
	}
	return productTypes, nil
}

// CountForTenant counts product types matching the filter
func (r *GormProductTypeRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductTypeModel{}), tenantID, filter).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count product types: %w", err)
	}
	return count, nil
}

// ExistsBySlug checks if a slug is already taken within a tenant
func (r *GormProductTypeRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductTypeModel{}).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product type
func (r *GormProductTypeRepository) Save(ctx context.Context, productType *catalog.ProductType) error {
	if err := r.db.WithContext(ctx).Save(models.ProductTypeModelFromDomain(productType)).Error; err != nil {
		return fmt.Errorf("save product type: %w", err)
	}
	return nil
}

// DeleteForTenant deletes a product type within a tenant
func (r *GormProductTypeRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ProductTypeModel{})
	if result.Error != nil {
		return fmt.Errorf("delete product type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies the search and the kind/shipping filters
func (r *GormProductTypeRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Scopes(tenant.Scope(tenantID))

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR slug LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "is_shipping_required":
			query = query.Where("is_shipping_required = ?", value)
		}
	}

	return query
}

// Ensure GormProductTypeRepository implements ProductTypeRepository
var _ catalog.ProductTypeRepository = (*GormProductTypeRepository)(nil)
