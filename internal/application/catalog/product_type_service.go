package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ProductTypeService handles product type operations
type ProductTypeService struct {
	repo      catalog.ProductTypeRepository
	publisher shared.EventPublisher
}

// NewProductTypeService creates a new ProductTypeService. publisher may be nil.
func NewProductTypeService(repo catalog.ProductTypeRepository, publisher shared.EventPublisher) *ProductTypeService {
	return &ProductTypeService{repo: repo, publisher: publisher}
}

// Create creates a product type. Slugs are unique per tenant.
func (s *ProductTypeService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductTypeRequest) (*ProductTypeResponse, error) {
	unit, err := valueobject.ParseWeightUnit(req.WeightUnit)
	if err != nil {
		return nil, shared.NewDomainErrorWithCause("INVALID_WEIGHT_UNIT", err.Error(), err)
	}

	productType, err := catalog.NewProductType(tenantID, req.Name, catalog.ProductTypeOptions{
		ShippingWeight: req.ShippingWeight,
		GiftCard:       req.GiftCard,
		WeightUnit:     unit,
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBySlug(ctx, tenantID, productType.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product type with this slug already exists")
	}

	if err := s.repo.Save(ctx, productType); err != nil {
		return nil, err
	}
	s.publish(ctx, productType)

	response := ToProductTypeResponse(productType)
	return &response, nil
}

// GetByID retrieves a product type by ID
func (s *ProductTypeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductTypeResponse, error) {
	productType, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToProductTypeResponse(productType)
	return &response, nil
}

// List returns one page of product types
func (s *ProductTypeService) List(ctx context.Context, tenantID uuid.UUID, filter ProductTypeListFilter) (*shared.Paginated[ProductTypeResponse], error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}
	if filter.IsShippingRequired != nil {
		domainFilter.Filters["is_shipping_required"] = *filter.IsShippingRequired
	}

	types, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductTypeResponses(types), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Delete deletes a product type
func (s *ProductTypeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	productType, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	productType.MarkDeleted()
	if err := s.repo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.publish(ctx, productType)
	return nil
}

func (s *ProductTypeService) publish(ctx context.Context, productType *catalog.ProductType) {
	events := productType.GetDomainEvents()
	productType.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		logger.L(ctx).Warn("Failed to publish product type events", zap.Error(err))
	}
}
