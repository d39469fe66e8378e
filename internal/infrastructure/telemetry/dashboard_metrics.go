package telemetry

import (
	"context"
	"fmt"
	"time"

	partnerapp "github.com/shopdash/backend/internal/application/partner"
	"github.com/shopdash/backend/internal/infrastructure/event"
	"github.com/shopdash/backend/internal/infrastructure/orderstatus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DashboardMeterName is the instrumentation scope of the dashboard metrics
const DashboardMeterName = "github.com/shopdash/backend/dashboard"

// DashboardMetrics records the dashboard's business metrics
type DashboardMetrics struct {
	statusCache  metric.Int64Counter
	statusFetch  metric.Float64Histogram
	statusErrors metric.Int64Counter
	filterUsage  metric.Int64Counter
	domainEvents metric.Int64Counter
}

// NewDashboardMetrics creates the dashboard instruments on meter
func NewDashboardMetrics(meter metric.Meter) (*DashboardMetrics, error) {
	m := &DashboardMetrics{}
	var err error

	if m.statusCache, err = meter.Int64Counter("order_status.cache.requests",
		metric.WithDescription("Order prep status cache lookups"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("create order_status.cache.requests: %w", err)
	}
	if m.statusFetch, err = meter.Float64Histogram("order_status.fetch.duration",
		metric.WithDescription("Duration of upstream order prep status fetches"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	); err != nil {
		return nil, fmt.Errorf("create order_status.fetch.duration: %w", err)
	}
	if m.statusErrors, err = meter.Int64Counter("order_status.fetch.errors",
		metric.WithDescription("Failed upstream order prep status fetches"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, fmt.Errorf("create order_status.fetch.errors: %w", err)
	}
	if m.filterUsage, err = meter.Int64Counter("customer_list.filter.usage",
		metric.WithDescription("Customer list requests per applied filter"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("create customer_list.filter.usage: %w", err)
	}
	if m.domainEvents, err = meter.Int64Counter("domain.events",
		metric.WithDescription("Published domain events"),
		metric.WithUnit("{event}"),
	); err != nil {
		return nil, fmt.Errorf("create domain.events: %w", err)
	}
	return m, nil
}

// RecordOrderStatusCache counts a cache hit or miss
func (m *DashboardMetrics) RecordOrderStatusCache(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.statusCache.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordOrderStatusFetch records an upstream fetch
func (m *DashboardMetrics) RecordOrderStatusFetch(ctx context.Context, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		m.statusErrors.Add(ctx, 1)
	}
	m.statusFetch.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordCustomerListFilters counts each applied filter key once
func (m *DashboardMetrics) RecordCustomerListFilters(ctx context.Context, keys []string) {
	for _, key := range keys {
		m.filterUsage.Add(ctx, 1, metric.WithAttributes(attribute.String("filter", key)))
	}
}

// RecordDomainEvent counts a published domain event
func (m *DashboardMetrics) RecordDomainEvent(ctx context.Context, eventType, aggregateType string) {
	m.domainEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.String("aggregate_type", aggregateType),
	))
}

var (
	_ orderstatus.Recorder           = (*DashboardMetrics)(nil)
	_ partnerapp.FilterUsageRecorder = (*DashboardMetrics)(nil)
	_ event.Recorder                 = (*DashboardMetrics)(nil)
)
