package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shopdash/backend/internal/infrastructure/orderstatus"
)

// OrderStatusLoader attaches a fresh order status loader to each request so
// the status lookups of one view share batches.
func OrderStatusLoader(factory *orderstatus.LoaderFactory) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := orderstatus.WithLoader(c.Request.Context(), factory.New())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
