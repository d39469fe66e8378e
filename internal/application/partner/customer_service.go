package partner

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CustomerListPath is the dashboard route of the customer list
const CustomerListPath = "/customers"

// ListSettings bounds list pages and the recent orders section
type ListSettings struct {
	DefaultPageSize   int
	MaxPageSize       int
	RecentOrdersLimit int
}

// DefaultListSettings returns the built-in list settings
func DefaultListSettings() ListSettings {
	return ListSettings{
		DefaultPageSize:   20,
		MaxPageSize:       100,
		RecentOrdersLimit: 5,
	}
}

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	orderRepo    trade.OrderRepository
	tabRepo      partner.FilterTabRepository
	publisher    shared.EventPublisher
	usage        FilterUsageRecorder
	settings     ListSettings
}

// CustomerServiceOption configures a CustomerService
type CustomerServiceOption func(*CustomerService)

// WithEventPublisher publishes customer domain events after each change
func WithEventPublisher(p shared.EventPublisher) CustomerServiceOption {
	return func(s *CustomerService) {
		s.publisher = p
	}
}

// WithFilterUsageRecorder records the filters of each list request
func WithFilterUsageRecorder(r FilterUsageRecorder) CustomerServiceOption {
	return func(s *CustomerService) {
		if r != nil {
			s.usage = r
		}
	}
}

// WithListSettings overrides the page and recent order limits
func WithListSettings(settings ListSettings) CustomerServiceOption {
	return func(s *CustomerService) {
		s.settings = settings
	}
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	orderRepo trade.OrderRepository,
	tabRepo partner.FilterTabRepository,
	opts ...CustomerServiceOption,
) *CustomerService {
	s := &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		tabRepo:      tabRepo,
		usage:        nopFilterUsageRecorder{},
		settings:     DefaultListSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
	}

	customer, err := partner.NewCustomer(tenantID, req.Email, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Metadata {
		if item.Key == partner.MetadataKeyPhone {
			continue
		}
		customer.SetMetadata(item.Key, item.Value)
	}
	if req.Phone != "" {
		if err := customer.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Note != "" {
		customer.SetNote(req.Note)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publish(ctx, &customer.TenantAggregateRoot)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List returns one page of customers for the list URL params. Filter
// variables the principal may not use are dropped before querying.
func (s *CustomerService) List(ctx context.Context, principal identity.Principal, params url.Values) (*CustomerListResult, error) {
	urlFilters := partner.ParseCustomerListURLFilters(params)
	opts := partner.GetFilterOpts(urlFilters)
	variables := partner.RestrictFilterVariables(partner.GetFilterVariables(urlFilters), principal.Permissions)
	sort := partner.ParseCustomerSort(params)
	page, pageSize := s.pagination(params)

	query := partner.CustomerQuery{
		Filter:   variables,
		Sort:     sort,
		Page:     page,
		PageSize: pageSize,
	}
	customers, err := s.customerRepo.FindAllForTenant(ctx, principal.TenantID, query)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.CountForTenant(ctx, principal.TenantID, variables)
	if err != nil {
		return nil, err
	}
	tabs, err := s.tabRepo.FindByOwner(ctx, principal.TenantID, principal.UserID, partner.CustomerFiltersKey)
	if err != nil {
		return nil, err
	}

	active := partner.GetActiveFilters(params)
	if len(active) > 0 {
		keys := make([]string, 0, len(active))
		for key := range active {
			keys = append(keys, key)
		}
		s.usage.RecordCustomerListFilters(ctx, keys)
	}

	paged := shared.NewPaginated(ToCustomerResponses(customers), total, page, pageSize)
	return &CustomerListResult{
		Items:           paged.Items,
		Total:           paged.Total,
		Page:            paged.Page,
		PageSize:        paged.PageSize,
		TotalPages:      paged.TotalPages,
		Sort:            SortState{Field: sort.Field, Asc: sort.Asc},
		FilterOpts:      opts,
		FilterStructure: partner.CreateFilterStructure(opts, principal.Permissions),
		FiltersApplied:  partner.AreFiltersApplied(params),
		CurrentTab:      partner.GetFiltersCurrentTab(params, tabs),
		Tabs:            toFilterTabSummaries(tabs),
	}, nil
}

// FilterPanel returns the filter panel state for the list URL params
func (s *CustomerService) FilterPanel(principal identity.Principal, params url.Values) FilterPanelResponse {
	opts := partner.GetFilterOpts(partner.ParseCustomerListURLFilters(params))
	structure := partner.CreateFilterStructure(opts, principal.Permissions)
	return FilterPanelResponse{
		Opts:      opts,
		Structure: structure,
		Query:     partner.FilterStructureQuery(structure).Encode(),
	}
}

// SortURL resolves a column click on the list. ok is false for unknown fields.
func (s *CustomerService) SortURL(params url.Values, field string) (SortNavigation, bool) {
	handler := partner.CreateSortHandler(partner.CustomerListURL(CustomerListPath), params)
	target, ok := handler(field)
	if !ok {
		return SortNavigation{}, false
	}
	return SortNavigation{URL: target, Replace: true}, true
}

// Details returns a customer with its most recent orders
func (s *CustomerService) Details(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerDetailsResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByCustomer(ctx, tenantID, customerID, s.settings.RecentOrdersLimit)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	lastOrders := make([]OrderSummaryResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		lastOrders[i] = OrderSummaryResponse{
			ID:            o.ID,
			Number:        o.DisplayNumber(),
			Created:       o.CreatedAt,
			Status:        o.Status,
			PaymentStatus: trade.TransformPaymentStatus(o.ChargeStatus),
			TotalGross:    o.TotalGross,
		}
	}

	return &CustomerDetailsResponse{
		Customer:    ToCustomerResponse(customer),
		LastOrders:  lastOrders,
		ViewAllHref: CustomerOrdersHref(customer.Email),
		TotalOrders: total,
	}, nil
}

// Delete deletes a customer
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	customer.MarkDeleted()
	if err := s.customerRepo.DeleteForTenant(ctx, tenantID, customerID); err != nil {
		return err
	}
	s.publish(ctx, &customer.TenantAggregateRoot)
	return nil
}

// pagination reads page and page_size; missing or malformed values fall back to defaults
func (s *CustomerService) pagination(params url.Values) (page, pageSize int) {
	page = 1
	if n, err := strconv.Atoi(params.Get(shared.PageParam)); err == nil && n > 0 {
		page = n
	}
	pageSize = s.settings.DefaultPageSize
	if n, err := strconv.Atoi(params.Get(shared.PageSizeParam)); err == nil && n > 0 {
		pageSize = n
	}
	if s.settings.MaxPageSize > 0 && pageSize > s.settings.MaxPageSize {
		pageSize = s.settings.MaxPageSize
	}
	return page, pageSize
}

// publish emits and clears pending domain events. Publishing is best effort.
func (s *CustomerService) publish(ctx context.Context, root *shared.TenantAggregateRoot) {
	events := root.GetDomainEvents()
	root.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		logger.L(ctx).Warn("Failed to publish customer events", zap.Error(err))
	}
}

func toFilterTabSummaries(tabs []partner.FilterTab) []FilterTabSummary {
	summaries := make([]FilterTabSummary, len(tabs))
	for i, tab := range tabs {
		summaries[i] = FilterTabSummary{Index: i + 1, Name: tab.Name, Data: tab.Data}
	}
	return summaries
}
