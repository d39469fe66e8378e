package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/shared"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantAggregateModel
	Email      string    `gorm:"type:varchar(254);not null;index"`
	FirstName  string    `gorm:"type:varchar(256)"`
	LastName   string    `gorm:"type:varchar(256)"`
	IsActive   bool      `gorm:"not null"`
	DateJoined time.Time `gorm:"not null;index"`
	Note       string    `gorm:"type:text"`

	Metadata []CustomerMetadataModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`

	// NumberOfOrders is filled by the list query's order count subselect
	NumberOfOrders int `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	metadata := make([]partner.MetadataItem, len(m.Metadata))
	for i, item := range m.Metadata {
		metadata[i] = partner.MetadataItem{Key: item.Key, Value: item.Value}
	}
	return &partner.Customer{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Email:               m.Email,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		IsActive:            m.IsActive,
		DateJoined:          m.DateJoined,
		Note:                m.Note,
		Metadata:            metadata,
		NumberOfOrders:      m.NumberOfOrders,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Email = c.Email
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.IsActive = c.IsActive
	m.DateJoined = c.DateJoined.UTC()
	m.Note = c.Note
	m.Metadata = make([]CustomerMetadataModel, len(c.Metadata))
	for i, item := range c.Metadata {
		m.Metadata[i] = CustomerMetadataModel{
			CustomerID: c.ID,
			Key:        item.Key,
			Value:      item.Value,
			Position:   i,
		}
	}
	m.NumberOfOrders = c.NumberOfOrders
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// CustomerMetadataModel is one public metadata item of a customer
type CustomerMetadataModel struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key        string    `gorm:"type:varchar(100);primaryKey"`
	Value      string    `gorm:"type:text;not null"`
	Position   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerMetadataModel) TableName() string {
	return "customer_metadata"
}

// FilterTabModel is the persistence model for a saved list filter tab
type FilterTabModel struct {
	BaseModel
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_filter_tab_owner_position,priority:1"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_filter_tab_owner_position,priority:2"`
	StorageKey string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_filter_tab_owner_position,priority:3"`
	Position   int       `gorm:"not null;uniqueIndex:idx_filter_tab_owner_position,priority:4"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Data       string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (FilterTabModel) TableName() string {
	return "filter_tabs"
}

// ToDomain converts the persistence model to a domain FilterTab
func (m *FilterTabModel) ToDomain() *partner.FilterTab {
	return &partner.FilterTab{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID:   m.TenantID,
		UserID:     m.UserID,
		StorageKey: m.StorageKey,
		Position:   m.Position,
		Name:       m.Name,
		Data:       m.Data,
	}
}

// FilterTabModelFromDomain creates a persistence model from a domain FilterTab
func FilterTabModelFromDomain(t *partner.FilterTab) *FilterTabModel {
	m := &FilterTabModel{
		TenantID:   t.TenantID,
		UserID:     t.UserID,
		StorageKey: t.StorageKey,
		Position:   t.Position,
		Name:       t.Name,
		Data:       t.Data,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
