// Package models contains GORM persistence models that map to database tables.
// Models are separate from domain entities so the domain layer stays free of
// ORM tags.
//
// - base.go: common columns (id, timestamps, version, tenant)
// - catalog.go: product types
// - partner.go: customers, customer metadata, saved filter tabs
// - trade.go: orders
package models
