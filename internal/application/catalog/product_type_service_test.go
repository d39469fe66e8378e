package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductTypeRepository is a mock implementation of ProductTypeRepository
type MockProductTypeRepository struct {
	mock.Mock
}

func (m *MockProductTypeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ProductType, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductType), args.Error(1)
}

func (m *MockProductTypeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.ProductType, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.ProductType), args.Error(1)
}

func (m *MockProductTypeRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductTypeRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, tenantID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductTypeRepository) Save(ctx context.Context, productType *catalog.ProductType) error {
	args := m.Called(ctx, productType)
	return args.Error(0)
}

func (m *MockProductTypeRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type countingPublisher struct {
	types []string
}

func (p *countingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		p.types = append(p.types, e.EventType())
	}
	return nil
}

func TestProductTypeService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("shippable type with weight", func(t *testing.T) {
		repo := new(MockProductTypeRepository)
		publisher := &countingPublisher{}
		svc := NewProductTypeService(repo, publisher)

		repo.On("ExistsBySlug", ctx, tenantID, "heavy-boxes").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.ProductType")).Return(nil)

		weight := decimal.RequireFromString("12.5")
		resp, err := svc.Create(ctx, tenantID, CreateProductTypeRequest{
			Name:           "Heavy Boxes",
			ShippingWeight: &weight,
			WeightUnit:     "lb",
		})
		require.NoError(t, err)
		assert.Equal(t, "heavy-boxes", resp.Slug)
		assert.True(t, resp.IsShippingRequired)
		require.NotNil(t, resp.Weight)
		assert.Equal(t, valueobject.WeightUnitLB, resp.Weight.Unit)
		assert.True(t, resp.Weight.Value.Equal(weight))
		assert.Equal(t, []string{catalog.EventTypeProductTypeCreated}, publisher.types)
	})

	t.Run("without weight is not shippable", func(t *testing.T) {
		repo := new(MockProductTypeRepository)
		svc := NewProductTypeService(repo, nil)

		repo.On("ExistsBySlug", ctx, tenantID, "e-books").Return(false, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateProductTypeRequest{Name: "E-Books", GiftCard: true})
		require.NoError(t, err)
		assert.False(t, resp.IsShippingRequired)
		assert.Nil(t, resp.Weight)
		assert.Equal(t, catalog.ProductTypeKindGiftCard, resp.Kind)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo := new(MockProductTypeRepository)
		svc := NewProductTypeService(repo, nil)
		repo.On("ExistsBySlug", ctx, tenantID, "shoes").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateProductTypeRequest{Name: "Shoes"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative weight", func(t *testing.T) {
		svc := NewProductTypeService(new(MockProductTypeRepository), nil)
		weight := decimal.NewFromInt(-1)

		_, err := svc.Create(ctx, tenantID, CreateProductTypeRequest{Name: "Bad", ShippingWeight: &weight})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_WEIGHT", domainErr.Code)
	})

	t.Run("unknown weight unit", func(t *testing.T) {
		svc := NewProductTypeService(new(MockProductTypeRepository), nil)
		weight := decimal.NewFromInt(1)

		_, err := svc.Create(ctx, tenantID, CreateProductTypeRequest{Name: "Bad", ShippingWeight: &weight, WeightUnit: "stone"})
		require.Error(t, err)
	})
}

func TestProductTypeService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockProductTypeRepository)
	svc := NewProductTypeService(repo, nil)

	pt, err := catalog.NewProductType(tenantID, "Shoes", catalog.ProductTypeOptions{})
	require.NoError(t, err)

	shipping := true
	match := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 10 && f.Search == "sh" &&
			f.Filters["kind"] == "NORMAL" && f.Filters["is_shipping_required"] == true &&
			f.OrderBy == ""
	})
	repo.On("FindAllForTenant", ctx, tenantID, match).Return([]catalog.ProductType{*pt}, nil)
	repo.On("CountForTenant", ctx, tenantID, match).Return(int64(11), nil)

	page, err := svc.List(ctx, tenantID, ProductTypeListFilter{
		Search:             "sh",
		Kind:               "NORMAL",
		IsShippingRequired: &shipping,
		Page:               2,
		PageSize:           10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "shoes", page.Items[0].Slug)
}

func TestProductTypeService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deletes and publishes", func(t *testing.T) {
		repo := new(MockProductTypeRepository)
		publisher := &countingPublisher{}
		svc := NewProductTypeService(repo, publisher)

		pt, err := catalog.NewProductType(tenantID, "Shoes", catalog.ProductTypeOptions{})
		require.NoError(t, err)
		pt.ClearDomainEvents()

		repo.On("FindByIDForTenant", ctx, tenantID, pt.ID).Return(pt, nil)
		repo.On("DeleteForTenant", ctx, tenantID, pt.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, pt.ID))
		assert.Equal(t, []string{catalog.EventTypeProductTypeDeleted}, publisher.types)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockProductTypeRepository)
		svc := NewProductTypeService(repo, nil)
		id := uuid.New()
		repo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, tenantID, id), shared.ErrNotFound)
	})
}
