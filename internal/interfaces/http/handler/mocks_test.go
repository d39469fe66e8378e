package handler

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	catalogapp "github.com/shopdash/backend/internal/application/catalog"
	partnerapp "github.com/shopdash/backend/internal/application/partner"
	tradeapp "github.com/shopdash/backend/internal/application/trade"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type mockCustomerService struct {
	mock.Mock
}

func (m *mockCustomerService) Create(ctx context.Context, tenantID uuid.UUID, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *mockCustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *mockCustomerService) List(ctx context.Context, principal identity.Principal, params url.Values) (*partnerapp.CustomerListResult, error) {
	args := m.Called(ctx, principal, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerListResult), args.Error(1)
}

func (m *mockCustomerService) FilterPanel(principal identity.Principal, params url.Values) partnerapp.FilterPanelResponse {
	args := m.Called(principal, params)
	return args.Get(0).(partnerapp.FilterPanelResponse)
}

func (m *mockCustomerService) SortURL(params url.Values, field string) (partnerapp.SortNavigation, bool) {
	args := m.Called(params, field)
	return args.Get(0).(partnerapp.SortNavigation), args.Bool(1)
}

func (m *mockCustomerService) Details(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerDetailsResponse, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerDetailsResponse), args.Error(1)
}

func (m *mockCustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return m.Called(ctx, tenantID, customerID).Error(0)
}

type mockFilterTabService struct {
	mock.Mock
}

func (m *mockFilterTabService) GetFilterTabs(ctx context.Context, principal identity.Principal) ([]partnerapp.FilterTabSummary, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partnerapp.FilterTabSummary), args.Error(1)
}

func (m *mockFilterTabService) SaveFilterTab(ctx context.Context, principal identity.Principal, req partnerapp.SaveFilterTabRequest) ([]partnerapp.FilterTabSummary, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partnerapp.FilterTabSummary), args.Error(1)
}

func (m *mockFilterTabService) DeleteFilterTab(ctx context.Context, principal identity.Principal, index int) ([]partnerapp.FilterTabSummary, error) {
	args := m.Called(ctx, principal, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partnerapp.FilterTabSummary), args.Error(1)
}

type mockCustomerExporter struct {
	mock.Mock
}

func (m *mockCustomerExporter) Export(ctx context.Context, principal identity.Principal, params url.Values) (*partnerapp.ExportResult, error) {
	args := m.Called(ctx, principal, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.ExportResult), args.Error(1)
}

type mockOrderViews struct {
	mock.Mock
}

func (m *mockOrderViews) CustomerOrders(ctx context.Context, tenantID, customerID uuid.UUID) (*tradeapp.CustomerOrdersCard, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.CustomerOrdersCard), args.Error(1)
}

func (m *mockOrderViews) PrepStatus(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.PrepStatusView, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.PrepStatusView), args.Error(1)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderResponse), args.Error(1)
}

func (m *mockOrderService) List(ctx context.Context, tenantID uuid.UUID, filter tradeapp.OrderListFilter) (*shared.Paginated[tradeapp.OrderResponse], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[tradeapp.OrderResponse]), args.Error(1)
}

type mockProductTypeService struct {
	mock.Mock
}

func (m *mockProductTypeService) Create(ctx context.Context, tenantID uuid.UUID, req catalogapp.CreateProductTypeRequest) (*catalogapp.ProductTypeResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductTypeResponse), args.Error(1)
}

func (m *mockProductTypeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.ProductTypeResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductTypeResponse), args.Error(1)
}

func (m *mockProductTypeService) List(ctx context.Context, tenantID uuid.UUID, filter catalogapp.ProductTypeListFilter) (*shared.Paginated[catalogapp.ProductTypeResponse], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.ProductTypeResponse]), args.Error(1)
}

func (m *mockProductTypeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}
