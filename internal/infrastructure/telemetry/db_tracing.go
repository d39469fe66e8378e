package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/shopdash/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultSlowQueryThreshold applies when none is configured
const defaultSlowQueryThreshold = 200 * time.Millisecond

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin plus callbacks that flag
// slow queries and record errors on the query span.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, dbSystem string, logger *zap.Logger) error {
	if !cfg.DBTraceEnabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbSystem)}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	threshold := cfg.DBSlowQueryThresh
	if threshold <= 0 {
		threshold = defaultSlowQueryThreshold
	}
	if err := registerQueryTiming(db, threshold); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", threshold),
	)
	return nil
}

func registerQueryTiming(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateQuerySpan(tx, threshold) }

	// otelgorm ends its span in "otel:after:*"; annotations must run first
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("dash:timing_before_create", before),
		cb.Query().Before("gorm:query").Register("dash:timing_before_query", before),
		cb.Update().Before("gorm:update").Register("dash:timing_before_update", before),
		cb.Delete().Before("gorm:delete").Register("dash:timing_before_delete", before),
		cb.Row().Before("gorm:row").Register("dash:timing_before_row", before),
		cb.Raw().Before("gorm:raw").Register("dash:timing_before_raw", before),
		cb.Create().After("gorm:create").Before("otel:after:create").Register("dash:timing_after_create", after),
		cb.Query().After("gorm:query").Before("otel:after:query").Register("dash:timing_after_query", after),
		cb.Update().After("gorm:update").Before("otel:after:update").Register("dash:timing_after_update", after),
		cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("dash:timing_after_delete", after),
		cb.Row().After("gorm:row").Before("otel:after:row").Register("dash:timing_after_row", after),
		cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("dash:timing_after_raw", after),
	)
}

func annotateQuerySpan(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
