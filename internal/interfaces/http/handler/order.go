package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/shopdash/backend/internal/application/trade"
	"github.com/shopdash/backend/internal/domain/shared"
)

// OrderService reads orders
type OrderService interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*tradeapp.OrderResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter tradeapp.OrderListFilter) (*shared.Paginated[tradeapp.OrderResponse], error)
}

// PrepStatusViewer renders the preparation status of an order
type PrepStatusViewer interface {
	PrepStatus(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.PrepStatusView, error)
}

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	orders OrderService
	prep   PrepStatusViewer
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderService, prep PrepStatusViewer) *OrderHandler {
	return &OrderHandler{orders: orders, prep: prep}
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Description  Newest first. customer searches the buyer's email.
// @Tags         orders
// @Produce      json
// @Param        customer  query string false "Customer email search"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.orders.List(c.Request.Context(), principal.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @ID           getOrder
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), principal.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// PrepStatus godoc
// @ID           getOrderPrepStatus
// @Summary      Preparation status of an order
// @Description  Asks the fulfillment service for the order's status. state is
// @Description  loading when the lookup is still in flight at the deadline and
// @Description  error when it failed; neither is an HTTP error.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PrepStatusView]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/orders/{id}/prep-status [get]
func (h *OrderHandler) PrepStatus(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.prep.PrepStatus(c.Request.Context(), principal.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
