package models

import (
	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductTypeModel is the persistence model for the ProductType domain entity.
type ProductTypeModel struct {
	TenantAggregateModel
	Name               string                  `gorm:"type:varchar(250);not null"`
	Slug               string                  `gorm:"type:varchar(255);not null;index"`
	Kind               catalog.ProductTypeKind `gorm:"type:varchar(32);not null;default:'NORMAL'"`
	IsShippingRequired bool                    `gorm:"not null;default:false"`
	WeightValue        decimal.NullDecimal     `gorm:"type:decimal(18,4)"`
	WeightUnit         *string                 `gorm:"type:varchar(8)"`
}

// TableName returns the table name for GORM
func (ProductTypeModel) TableName() string {
	return "product_types"
}

// ToDomain converts the persistence model to a domain ProductType entity.
func (m *ProductTypeModel) ToDomain() *catalog.ProductType {
	pt := &catalog.ProductType{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		Slug:                m.Slug,
		Kind:                m.Kind,
		IsShippingRequired:  m.IsShippingRequired,
	}
	if m.WeightValue.Valid {
		unit := valueobject.DefaultWeightUnit
		if m.WeightUnit != nil {
			if parsed, err := valueobject.ParseWeightUnit(*m.WeightUnit); err == nil {
				unit = parsed
			}
		}
		if weight, err := valueobject.NewWeight(m.WeightValue.Decimal, unit); err == nil {
			pt.Weight = &weight
		}
	}
	return pt
}

// FromDomain populates the persistence model from a domain ProductType entity.
func (m *ProductTypeModel) FromDomain(p *catalog.ProductType) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Slug = p.Slug
	m.Kind = p.Kind
	m.IsShippingRequired = p.IsShippingRequired
	m.WeightValue = decimal.NullDecimal{}
	m.WeightUnit = nil
	if p.Weight != nil {
		unit := string(p.Weight.Unit())
		m.WeightValue = decimal.NewNullDecimal(p.Weight.Value())
		m.WeightUnit = &unit
	}
}

// ProductTypeModelFromDomain creates a new persistence model from a domain ProductType entity.
func ProductTypeModelFromDomain(p *catalog.ProductType) *ProductTypeModel {
	m := &ProductTypeModel{}
	m.FromDomain(p)
	return m
}
