package router

import (
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/interfaces/http/handler"
	"github.com/shopdash/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers of the dashboard API
type Handlers struct {
	Customer    *handler.CustomerHandler
	Order       *handler.OrderHandler
	ProductType *handler.ProductTypeHandler
	System      *handler.SystemHandler
}

// RegisterDashboard registers the dashboard domain groups on r. Every group
// except system requires the permission of its section.
func RegisterDashboard(r *Router, h Handlers) {
	partnerRoutes := NewDomainGroup("partner", "/partner")
	customers := partnerRoutes.Group("customers", "/customers").
		Use(middleware.RequirePermissions(identity.PermissionManageUsers))
	customers.GET("", h.Customer.List)
	customers.POST("", h.Customer.Create)
	customers.GET("/filters", h.Customer.FilterPanel)
	customers.GET("/sort", h.Customer.Sort)
	customers.GET("/filter-tabs", h.Customer.GetFilterTabs)
	customers.POST("/filter-tabs", h.Customer.SaveFilterTab)
	customers.DELETE("/filter-tabs/:index", h.Customer.DeleteFilterTab)
	customers.POST("/export", h.Customer.Export)
	customers.GET("/:id", h.Customer.GetByID)
	customers.GET("/:id/details", h.Customer.Details)
	customers.GET("/:id/orders", h.Customer.Orders)
	customers.DELETE("/:id", h.Customer.Delete)

	tradeRoutes := NewDomainGroup("trade", "/trade")
	orders := tradeRoutes.Group("orders", "/orders").
		Use(middleware.RequirePermissions(identity.PermissionManageOrders))
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.GetByID)
	orders.GET("/:id/prep-status", h.Order.PrepStatus)

	catalogRoutes := NewDomainGroup("catalog", "/catalog")
	productTypes := catalogRoutes.Group("product-types", "/product-types").
		Use(middleware.RequirePermissions(identity.PermissionManageProductTypesAndAttributes))
	productTypes.POST("", h.ProductType.Create)
	productTypes.GET("", h.ProductType.List)
	productTypes.GET("/:id", h.ProductType.GetByID)
	productTypes.DELETE("/:id", h.ProductType.Delete)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.GetSystemInfo)
	systemRoutes.GET("/ping", h.System.Ping)
	systemRoutes.GET("/health", h.System.Health)

	r.Register(partnerRoutes).
		Register(tradeRoutes).
		Register(catalogRoutes).
		Register(systemRoutes)
}
