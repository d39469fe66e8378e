package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
	// Filter excludes requests from tracing when it returns false.
	Filter func(*http.Request) bool
}

// Tracing returns OpenTelemetry tracing middleware. It wraps otelgin; the
// span is named "METHOD route" and carries the request id. Register
// TracingAttributeInjector after authentication to add the tenant and user.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	opts := []otelgin.Option{
		otelgin.WithSpanNameFormatter(func(c *gin.Context) string {
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			return c.Request.Method + " " + route
		}),
	}
	if cfg.Filter != nil {
		opts = append(opts, otelgin.WithFilter(cfg.Filter))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// TracingAttributeInjector adds the request, tenant and user ids to the
// current span and marks error responses once the handler returns.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			attrs := make([]attribute.KeyValue, 0, 3)
			if id := c.GetString(RequestIDKey); id != "" {
				attrs = append(attrs, attribute.String("request_id", id))
			}
			if id := GetJWTTenantID(c); id != "" {
				attrs = append(attrs, attribute.String("tenant_id", id))
			}
			if id := GetJWTUserID(c); id != "" {
				attrs = append(attrs, attribute.String("user_id", id))
			}
			span.SetAttributes(attrs...)
		}

		c.Next()

		if !span.IsRecording() {
			return
		}
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
