package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/infrastructure/persistence/models"
	"github.com/shopdash/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// orderCountSubquery counts the orders of the customer row in scope
const orderCountSubquery = "(SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id)"

// dateLayout is the layout of joinedFrom/joinedTo filter values
const dateLayout = "2006-01-02"

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) selectWithOrderCount(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Select("customers.*, "+orderCountSubquery+" AS number_of_orders").
		Scopes(tenant.TableScope("customers", tenantID))
}

// FindByIDForTenant finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	err := r.selectWithOrderCount(ctx, tenantID).
		Preload("Metadata", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("customers.id = ?", id).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds one page of customers matching the query
func (r *GormCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, query partner.CustomerQuery) ([]partner.Customer, error) {
	db := applyCustomerFilter(r.selectWithOrderCount(ctx, tenantID), query.Filter).
		Preload("Metadata", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order(CustomerOrderBy(query.Sort))
	if query.PageSize > 0 {
		db = db.Offset(query.Offset()).Limit(query.PageSize)
	}

	var customerModels []models.CustomerModel
	if err := db.Find(&customerModels).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = *customerModels[i].ToDomain()
	}
	return customers, nil
}

// CountForTenant counts customers matching the filter
func (r *GormCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.CustomerFilterInput) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Scopes(tenant.TableScope("customers", tenantID))
	if err := applyCustomerFilter(db, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

// ExistsByEmail checks if a customer with the email exists
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a customer and replaces its metadata
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	metadata := model.Metadata
	model.Metadata = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Metadata").Save(model).Error; err != nil {
			return fmt.Errorf("save customer: %w", err)
		}
		if err := tx.Where("customer_id = ?", model.ID).Delete(&models.CustomerMetadataModel{}).Error; err != nil {
			return fmt.Errorf("clear customer metadata: %w", err)
		}
		if len(metadata) > 0 {
			if err := tx.Create(&metadata).Error; err != nil {
				return fmt.Errorf("save customer metadata: %w", err)
			}
		}
		return nil
	})
}

// DeleteForTenant deletes a customer within a tenant
func (r *GormCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.CustomerModel{})
		if result.Error != nil {
			return fmt.Errorf("delete customer: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerMetadataModel{}).Error; err != nil {
			return fmt.Errorf("delete customer metadata: %w", err)
		}
		return nil
	})
}

// applyCustomerFilter translates the list filter variables into WHERE clauses.
// Unparsable join dates are open bounds, like every other malformed filter value.
func applyCustomerFilter(db *gorm.DB, filter partner.CustomerFilterInput) *gorm.DB {
	if r := filter.DateJoined; r != nil {
		if from, ok := parseDay(r.Gte); ok {
			db = db.Where("customers.date_joined >= ?", from)
		}
		if to, ok := parseDay(r.Lte); ok {
			db = db.Where("customers.date_joined < ?", to.AddDate(0, 0, 1))
		}
	}

	if r := filter.NumberOfOrders; r != nil {
		if r.Gte != nil {
			db = db.Where(orderCountSubquery+" >= ?", *r.Gte)
		}
		if r.Lte != nil {
			db = db.Where(orderCountSubquery+" <= ?", *r.Lte)
		}
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		db = db.Where(
			"LOWER(customers.email) LIKE ? OR LOWER(customers.first_name) LIKE ? OR LOWER(customers.last_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	for _, item := range filter.Metadata {
		db = db.Where(
			"EXISTS (SELECT 1 FROM customer_metadata WHERE customer_metadata.customer_id = customers.id AND customer_metadata.key = ? AND customer_metadata.value = ?)",
			item.Key, item.Value,
		)
	}

	return db
}

func parseDay(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, *s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
