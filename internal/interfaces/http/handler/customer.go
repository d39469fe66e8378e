package handler

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/shopdash/backend/internal/application/partner"
	tradeapp "github.com/shopdash/backend/internal/application/trade"
	"github.com/shopdash/backend/internal/domain/identity"
)

// CustomerService is the customer use cases the handler serves
type CustomerService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error)
	GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error)
	List(ctx context.Context, principal identity.Principal, params url.Values) (*partnerapp.CustomerListResult, error)
	FilterPanel(principal identity.Principal, params url.Values) partnerapp.FilterPanelResponse
	SortURL(params url.Values, field string) (partnerapp.SortNavigation, bool)
	Details(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerDetailsResponse, error)
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
}

// FilterTabService stores the saved filter tabs of the customer list
type FilterTabService interface {
	GetFilterTabs(ctx context.Context, principal identity.Principal) ([]partnerapp.FilterTabSummary, error)
	SaveFilterTab(ctx context.Context, principal identity.Principal, req partnerapp.SaveFilterTabRequest) ([]partnerapp.FilterTabSummary, error)
	DeleteFilterTab(ctx context.Context, principal identity.Principal, index int) ([]partnerapp.FilterTabSummary, error)
}

// CustomerExporter writes the filtered customer list to a workbook
type CustomerExporter interface {
	Export(ctx context.Context, principal identity.Principal, params url.Values) (*partnerapp.ExportResult, error)
}

// CustomerOrdersViewer builds the recent orders card of a customer
type CustomerOrdersViewer interface {
	CustomerOrders(ctx context.Context, tenantID, customerID uuid.UUID) (*tradeapp.CustomerOrdersCard, error)
}

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customers CustomerService
	tabs      FilterTabService
	exporter  CustomerExporter
	orders    CustomerOrdersViewer
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	customers CustomerService,
	tabs FilterTabService,
	exporter CustomerExporter,
	orders CustomerOrdersViewer,
) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		tabs:      tabs,
		exporter:  exporter,
		orders:    orders,
	}
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  One page of customers for the list URL. The query carries the filters
// @Description  (query, joinedFrom, joinedTo, numberOfOrdersFrom, numberOfOrdersTo),
// @Description  sort, asc, activeTab, page and page_size.
// @Tags         customers
// @Produce      json
// @Param        query              query string false "Search by name or email"
// @Param        joinedFrom         query string false "Joined on or after (YYYY-MM-DD)"
// @Param        joinedTo           query string false "Joined on or before (YYYY-MM-DD)"
// @Param        numberOfOrdersFrom query int    false "Minimum number of orders"
// @Param        numberOfOrdersTo   query int    false "Maximum number of orders"
// @Param        sort               query string false "Sort field" Enums(name, email, orders)
// @Param        asc                query bool   false "Ascending"
// @Param        page               query int    false "Page number" default(1)
// @Param        page_size          query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[partnerapp.CustomerListResult]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.customers.List(c.Request.Context(), principal, c.Request.URL.Query())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result, result.Total, result.Page, result.PageSize)
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a new customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), principal.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID godoc
// @ID           getCustomer
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customers.GetByID(c.Request.Context(), principal.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Details godoc
// @ID           getCustomerDetails
// @Summary      Get a customer with its most recent orders
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.CustomerDetailsResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers/{id}/details [get]
func (h *CustomerHandler) Details(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	details, err := h.customers.Details(c.Request.Context(), principal.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, details)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Tags         customers
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.customers.Delete(c.Request.Context(), principal.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Orders godoc
// @ID           getCustomerOrders
// @Summary      Recent orders card of a customer
// @Description  The newest orders with payment pills and preparation status.
// @Description  A failed status lookup leaves prep_status empty.
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.CustomerOrdersCard]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers/{id}/orders [get]
func (h *CustomerHandler) Orders(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	card, err := h.orders.CustomerOrders(c.Request.Context(), principal.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, card)
}

// FilterPanel godoc
// @ID           getCustomerFilterPanel
// @Summary      Filter panel for the current list query
// @Tags         customers
// @Produce      json
// @Success      200 {object} APIResponse[partnerapp.FilterPanelResponse]
// @Security     BearerAuth
// @Router       /partner/customers/filters [get]
func (h *CustomerHandler) FilterPanel(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	h.Success(c, h.customers.FilterPanel(principal, c.Request.URL.Query()))
}

// Sort godoc
// @ID           sortCustomers
// @Summary      Resolve a column sort click
// @Description  Returns the list URL to replace the current one with.
// @Description  An unknown field is a no-op and answers 204.
// @Tags         customers
// @Produce      json
// @Param        field query string true "Sort field" Enums(name, email, orders)
// @Success      200 {object} APIResponse[partnerapp.SortNavigation]
// @Success      204
// @Security     BearerAuth
// @Router       /partner/customers/sort [get]
func (h *CustomerHandler) Sort(c *gin.Context) {
	params := c.Request.URL.Query()
	field := params.Get("field")
	params.Del("field")

	nav, ok := h.customers.SortURL(params, field)
	if !ok {
		h.NoContent(c)
		return
	}
	h.Success(c, nav)
}

// GetFilterTabs godoc
// @ID           listCustomerFilterTabs
// @Summary      Saved filter tabs of the customer list
// @Tags         customers
// @Produce      json
// @Success      200 {object} APIResponse[[]partnerapp.FilterTabSummary]
// @Security     BearerAuth
// @Router       /partner/customers/filter-tabs [get]
func (h *CustomerHandler) GetFilterTabs(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	tabs, err := h.tabs.GetFilterTabs(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tabs)
}

// SaveFilterTab godoc
// @ID           saveCustomerFilterTab
// @Summary      Save the current filters as a tab
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.SaveFilterTabRequest true "Tab name and encoded query"
// @Success      201 {object} APIResponse[[]partnerapp.FilterTabSummary]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers/filter-tabs [post]
func (h *CustomerHandler) SaveFilterTab(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req partnerapp.SaveFilterTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	tabs, err := h.tabs.SaveFilterTab(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tabs)
}

// DeleteFilterTab godoc
// @ID           deleteCustomerFilterTab
// @Summary      Delete a saved filter tab
// @Description  Tabs are numbered from 1; the ones after the deleted tab move up.
// @Tags         customers
// @Produce      json
// @Param        index path int true "Tab number"
// @Success      200 {object} APIResponse[[]partnerapp.FilterTabSummary]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers/filter-tabs/{index} [delete]
func (h *CustomerHandler) DeleteFilterTab(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.BadRequest(c, "Invalid tab index")
		return
	}

	tabs, err := h.tabs.DeleteFilterTab(c.Request.Context(), principal, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tabs)
}

// Export godoc
// @ID           exportCustomers
// @Summary      Export the filtered customer list
// @Description  Writes every matching customer to an XLSX workbook in object
// @Description  storage and returns a presigned download URL.
// @Tags         customers
// @Produce      json
// @Success      200 {object} APIResponse[partnerapp.ExportResult]
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner/customers/export [post]
func (h *CustomerHandler) Export(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.exporter.Export(c.Request.Context(), principal, c.Request.URL.Query())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
