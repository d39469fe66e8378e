package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/shopdash/backend/internal/application/catalog"
	"github.com/shopdash/backend/internal/domain/shared"
)

// ProductTypeService manages product types
type ProductTypeService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req catalogapp.CreateProductTypeRequest) (*catalogapp.ProductTypeResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.ProductTypeResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter catalogapp.ProductTypeListFilter) (*shared.Paginated[catalogapp.ProductTypeResponse], error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ProductTypeHandler handles product type API endpoints
type ProductTypeHandler struct {
	BaseHandler
	productTypes ProductTypeService
}

// NewProductTypeHandler creates a new ProductTypeHandler
func NewProductTypeHandler(productTypes ProductTypeService) *ProductTypeHandler {
	return &ProductTypeHandler{productTypes: productTypes}
}

// Create godoc
// @ID           createProductType
// @Summary      Create a product type
// @Description  A shipping weight makes the type shippable; weight_unit defaults to KG.
// @Tags         product-types
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductTypeRequest true "Product type"
// @Success      201 {object} APIResponse[catalogapp.ProductTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/product-types [post]
func (h *ProductTypeHandler) Create(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req catalogapp.CreateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	productType, err := h.productTypes.Create(c.Request.Context(), principal.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, productType)
}

// List godoc
// @ID           listProductTypes
// @Summary      List product types
// @Tags         product-types
// @Produce      json
// @Param        search               query string false "Name search"
// @Param        kind                 query string false "Kind" Enums(NORMAL, GIFT_CARD)
// @Param        is_shipping_required query bool   false "Shipping required"
// @Param        page                 query int    false "Page number" default(1)
// @Param        page_size            query int    false "Page size" default(20)
// @Param        order_by             query string false "Sort field"
// @Param        order_dir            query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalogapp.ProductTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/product-types [get]
func (h *ProductTypeHandler) List(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var filter catalogapp.ProductTypeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.productTypes.List(c.Request.Context(), principal.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @ID           getProductType
// @Summary      Get a product type
// @Tags         product-types
// @Produce      json
// @Param        id path string true "Product type ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductTypeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/product-types/{id} [get]
func (h *ProductTypeHandler) GetByID(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	productType, err := h.productTypes.GetByID(c.Request.Context(), principal.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, productType)
}

// Delete godoc
// @ID           deleteProductType
// @Summary      Delete a product type
// @Tags         product-types
// @Param        id path string true "Product type ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/product-types/{id} [delete]
func (h *ProductTypeHandler) Delete(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.productTypes.Delete(c.Request.Context(), principal.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
