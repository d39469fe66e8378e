package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopdash/backend/internal/infrastructure/persistence/models"
	"github.com/shopdash/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByIDForTenant finds an order by ID for a specific tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns the newest orders of a customer, at most limit
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]trade.Order, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("created_at DESC, number DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orderModels []models.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	return toDomainOrders(orderModels), nil
}

// FindAllForTenant finds a page of orders, newest first
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.OrderFilter) ([]trade.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), tenantID, filter).
		Order("orders.created_at DESC, orders.number DESC")
	if filter.PageSize > 0 {
		query = query.Offset(shared.Filter{Page: filter.Page, PageSize: filter.PageSize}.Offset()).Limit(filter.PageSize)
	}

	var orderModels []models.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return toDomainOrders(orderModels), nil
}

// CountForTenant counts orders matching the filter
func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.OrderFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), tenantID, filter).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// CountByCustomer counts all orders of a customer
func (r *GormOrderRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count customer orders: %w", err)
	}
	return count, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	if err := r.db.WithContext(ctx).Save(models.OrderModelFromDomain(order)).Error; err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// applyFilter scopes to the tenant and matches the customer search against
// the order email or the linked customer's name.
func (r *GormOrderRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter trade.OrderFilter) *gorm.DB {
	query = query.Scopes(tenant.TableScope("orders", tenantID))
	if search := strings.TrimSpace(filter.Customer); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(orders.user_email) LIKE ? OR orders.customer_id IN (SELECT id FROM customers WHERE LOWER(customers.first_name || ' ' || customers.last_name) LIKE ?)",
			pattern, pattern,
		)
	}
	return query
}

func toDomainOrders(orderModels []models.OrderModel) []trade.Order {
	orders := make([]trade.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
