package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreateProductTypeRequest represents a request to create a product type.
// A shipping weight marks the type as shippable.
type CreateProductTypeRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=250"`
	ShippingWeight *decimal.Decimal `json:"shipping_weight"`
	GiftCard       bool             `json:"gift_card"`
	WeightUnit     string           `json:"weight_unit" binding:"omitempty,weight_unit"`
}

// ProductTypeListFilter represents filter options for the product type list
type ProductTypeListFilter struct {
	Search             string `form:"search"`
	Kind               string `form:"kind" binding:"omitempty,oneof=NORMAL GIFT_CARD"`
	IsShippingRequired *bool  `form:"is_shipping_required"`
	Page               int    `form:"page" binding:"min=0"`
	PageSize           int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy            string `form:"order_by"`
	OrderDir           string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// WeightResponse is a weight in API responses
type WeightResponse struct {
	Unit  valueobject.WeightUnit `json:"unit"`
	Value decimal.Decimal        `json:"value"`
}

// ProductTypeResponse represents a product type in API responses
type ProductTypeResponse struct {
	ID                 uuid.UUID               `json:"id"`
	Name               string                  `json:"name"`
	Slug               string                  `json:"slug"`
	Kind               catalog.ProductTypeKind `json:"kind"`
	IsShippingRequired bool                    `json:"is_shipping_required"`
	Weight             *WeightResponse         `json:"weight"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// ToProductTypeResponse converts a domain ProductType to its response
func ToProductTypeResponse(pt *catalog.ProductType) ProductTypeResponse {
	resp := ProductTypeResponse{
		ID:                 pt.ID,
		Name:               pt.Name,
		Slug:               pt.Slug,
		Kind:               pt.Kind,
		IsShippingRequired: pt.IsShippingRequired,
		CreatedAt:          pt.CreatedAt,
		UpdatedAt:          pt.UpdatedAt,
	}
	if pt.Weight != nil {
		resp.Weight = &WeightResponse{Unit: pt.Weight.Unit(), Value: pt.Weight.Value()}
	}
	return resp
}

// ToProductTypeResponses converts a slice of domain ProductTypes
func ToProductTypeResponses(types []catalog.ProductType) []ProductTypeResponse {
	responses := make([]ProductTypeResponse, len(types))
	for i := range types {
		responses[i] = ToProductTypeResponse(&types[i])
	}
	return responses
}
