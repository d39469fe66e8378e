package event

import (
	"context"

	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditLogHandler writes every domain event to the structured log
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

// Handle logs the event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	logger.Enrich(ctx, h.logger).Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("event_tenant_id", event.TenantID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns nil so the handler receives all events
func (h *AuditLogHandler) EventTypes() []string { return nil }

// Recorder counts published domain events
type Recorder interface {
	RecordDomainEvent(ctx context.Context, eventType, aggregateType string)
}

// MetricsHandler forwards every domain event to a Recorder
type MetricsHandler struct {
	recorder Recorder
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(recorder Recorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.recorder.RecordDomainEvent(ctx, event.EventType(), event.AggregateType())
	return nil
}

func (h *MetricsHandler) EventTypes() []string { return nil }
