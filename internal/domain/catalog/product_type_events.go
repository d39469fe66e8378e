package catalog

import (
	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProductType = "ProductType"

// Event type constants
const (
	EventTypeProductTypeCreated = "ProductTypeCreated"
	EventTypeProductTypeDeleted = "ProductTypeDeleted"
)

// ProductTypeCreatedEvent is published when a product type is created
type ProductTypeCreatedEvent struct {
	shared.BaseDomainEvent
	ProductTypeID      uuid.UUID       `json:"product_type_id"`
	Name               string          `json:"name"`
	Slug               string          `json:"slug"`
	Kind               ProductTypeKind `json:"kind"`
	IsShippingRequired bool            `json:"is_shipping_required"`
}

// NewProductTypeCreatedEvent creates a new ProductTypeCreatedEvent
func NewProductTypeCreatedEvent(pt *ProductType) *ProductTypeCreatedEvent {
	return &ProductTypeCreatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeProductTypeCreated, AggregateTypeProductType, pt.ID, pt.TenantID),
		ProductTypeID:      pt.ID,
		Name:               pt.Name,
		Slug:               pt.Slug,
		Kind:               pt.Kind,
		IsShippingRequired: pt.IsShippingRequired,
	}
}

// ProductTypeDeletedEvent is published when a product type is deleted
type ProductTypeDeletedEvent struct {
	shared.BaseDomainEvent
	ProductTypeID uuid.UUID `json:"product_type_id"`
	Slug          string    `json:"slug"`
}

// NewProductTypeDeletedEvent creates a new ProductTypeDeletedEvent
func NewProductTypeDeletedEvent(pt *ProductType) *ProductTypeDeletedEvent {
	return &ProductTypeDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductTypeDeleted, AggregateTypeProductType, pt.ID, pt.TenantID),
		ProductTypeID:   pt.ID,
		Slug:            pt.Slug,
	}
}
