package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/trade"
)

// defaultOrderPageSize applies when the request carries no page size
const defaultOrderPageSize = 20

// OrderService handles order read operations
type OrderService struct {
	orderRepo trade.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List returns one page of orders, newest first
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultOrderPageSize
	}

	domainFilter := trade.OrderFilter{
		Customer: filter.Customer,
		Page:     page,
		PageSize: pageSize,
	}
	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	result := shared.NewPaginated(responses, total, page, pageSize)
	return &result, nil
}
