package partner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, query partner.CustomerQuery) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, query)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.CustomerFilterInput) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]trade.Order, error) {
	args := m.Called(ctx, tenantID, customerID, limit)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.OrderFilter) ([]trade.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.OrderFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockFilterTabRepository is a mock implementation of FilterTabRepository
type MockFilterTabRepository struct {
	mock.Mock
}

func (m *MockFilterTabRepository) FindByOwner(ctx context.Context, tenantID, userID uuid.UUID, storageKey string) ([]partner.FilterTab, error) {
	args := m.Called(ctx, tenantID, userID, storageKey)
	return args.Get(0).([]partner.FilterTab), args.Error(1)
}

func (m *MockFilterTabRepository) Append(ctx context.Context, tab *partner.FilterTab) error {
	args := m.Called(ctx, tab)
	return args.Error(0)
}

func (m *MockFilterTabRepository) DeleteAt(ctx context.Context, tenantID, userID uuid.UUID, storageKey string, position int) error {
	args := m.Called(ctx, tenantID, userID, storageKey, position)
	return args.Error(0)
}

// =============================================================================
// Fakes
// =============================================================================

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

type recordingUsage struct {
	keys [][]string
}

func (r *recordingUsage) RecordCustomerListFilters(_ context.Context, keys []string) {
	r.keys = append(r.keys, keys)
}

type fakeEncoder struct {
	rows int
}

func (e *fakeEncoder) EncodeCustomers(customers []partner.Customer) ([]byte, error) {
	e.rows = len(customers)
	return []byte("xlsx"), nil
}

func (e *fakeEncoder) ContentType() string { return "application/test" }
func (e *fakeEncoder) Extension() string   { return ".xlsx" }

type fakeStorage struct {
	key         string
	body        []byte
	contentType string
}

func (s *fakeStorage) PutObject(_ context.Context, key string, body []byte, contentType string) error {
	s.key, s.body, s.contentType = key, body, contentType
	return nil
}

func (s *fakeStorage) PresignGetObject(_ context.Context, key string) (string, time.Time, error) {
	return "https://files.test/" + key, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}
