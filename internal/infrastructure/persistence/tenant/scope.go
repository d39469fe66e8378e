// Package tenant provides tenant scoping helpers for GORM queries.
//
// Every dashboard table carries a tenant_id column. Repositories apply one of
// the scopes below to each statement so rows of other tenants never leave the
// database:
//
//	db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Find(&rows)
//	db.Model(&models.CustomerModel{}).Scopes(tenant.TableScope("customers", tenantID))
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// Column is the tenant discriminator column shared by all tables
const Column = "tenant_id"

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when tenant_id format is invalid
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

// Scope restricts a query to one tenant's rows
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(Column+" = ?", tenantID)
	}
}

// TableScope is Scope with a qualified column, for queries that join tables
// which all carry tenant_id.
func TableScope(table string, tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(table+"."+Column+" = ?", tenantID)
	}
}

// FromContext returns the tenant stored in ctx by the authentication middleware
func FromContext(ctx context.Context) (uuid.UUID, error) {
	raw := logger.GetTenantID(ctx)
	if raw == "" {
		return uuid.Nil, ErrTenantIDRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidTenantID
	}
	return id, nil
}
