package models

import (
	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	TenantAggregateModel
	Number           int                `gorm:"not null;index"`
	CustomerID       *uuid.UUID         `gorm:"type:uuid;index"`
	UserEmail        string             `gorm:"type:varchar(254);index"`
	Status           trade.OrderStatus  `gorm:"type:varchar(32);not null;default:'UNCONFIRMED'"`
	ChargeStatus     trade.ChargeStatus `gorm:"type:varchar(32);not null;default:'NOT_CHARGED'"`
	Currency         string             `gorm:"type:varchar(3);not null"`
	TotalGrossAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	TotalNetAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	currency := valueobject.Currency(m.Currency)
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &trade.Order{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		CustomerID:          m.CustomerID,
		UserEmail:           m.UserEmail,
		Status:              m.Status,
		ChargeStatus:        m.ChargeStatus,
		TotalGross:          valueobject.MustNewMoney(m.TotalGrossAmount, currency),
		TotalNet:            valueobject.MustNewMoney(m.TotalNetAmount, currency),
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.Number = o.Number
	m.CustomerID = o.CustomerID
	m.UserEmail = o.UserEmail
	m.Status = o.Status
	m.ChargeStatus = o.ChargeStatus
	m.Currency = string(o.TotalGross.Currency())
	m.TotalGrossAmount = o.TotalGross.Amount()
	m.TotalNetAmount = o.TotalNet.Amount()
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
