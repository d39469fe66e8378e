package orderstatus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopdash/backend/internal/infrastructure/cache"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Recorder receives cache and fetch measurements
type Recorder interface {
	RecordOrderStatusCache(ctx context.Context, hit bool)
	RecordOrderStatusFetch(ctx context.Context, duration time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordOrderStatusCache(context.Context, bool)                 {}
func (nopRecorder) RecordOrderStatusFetch(context.Context, time.Duration, error) {}

// CacheKey returns the cache key of an order's status: order-status:{"id":"<id>"}
func CacheKey(orderID string) string {
	id, _ := json.Marshal(struct {
		ID string `json:"id"`
	}{ID: orderID})
	return "order-status:" + string(id)
}

// CachedReader serves statuses from a cache store for the stale time and
// collapses concurrent fetches of the same order into one upstream call.
type CachedReader struct {
	upstream  trade.PrepStatusReader
	store     cache.Store
	staleTime time.Duration
	group     singleflight.Group
	recorder  Recorder
}

// CachedReaderOption configures a CachedReader
type CachedReaderOption func(*CachedReader)

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) CachedReaderOption {
	return func(c *CachedReader) {
		if r != nil {
			c.recorder = r
		}
	}
}

// NewCachedReader wraps upstream with store
func NewCachedReader(upstream trade.PrepStatusReader, store cache.Store, staleTime time.Duration, opts ...CachedReaderOption) *CachedReader {
	c := &CachedReader{
		upstream:  upstream,
		store:     store,
		staleTime: staleTime,
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPrepStatus returns the cached status or fetches it. Failed fetches are
// not cached. Cache read and write errors degrade to a direct fetch.
func (c *CachedReader) GetPrepStatus(ctx context.Context, orderID string) (trade.PrepStatus, error) {
	key := CacheKey(orderID)
	log := logger.L(ctx)

	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		log.Warn("Order status cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var status trade.PrepStatus
		if err := json.Unmarshal(raw, &status); err == nil {
			c.recorder.RecordOrderStatusCache(ctx, true)
			return status, nil
		}
		log.Warn("Discarding malformed order status cache entry", zap.String("key", key))
	}
	c.recorder.RecordOrderStatusCache(ctx, false)

	ch := c.group.DoChan(key, func() (any, error) {
		// detached so one caller's cancellation does not fail the shared fetch
		fetchCtx := context.WithoutCancel(ctx)
		start := time.Now()
		status, err := c.upstream.GetPrepStatus(fetchCtx, orderID)
		c.recorder.RecordOrderStatusFetch(fetchCtx, time.Since(start), err)
		if err != nil {
			return trade.PrepStatus{}, err
		}
		if raw, err := json.Marshal(status); err == nil {
			if err := c.store.Set(fetchCtx, key, raw, c.staleTime); err != nil {
				log.Warn("Order status cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return status, nil
	})

	select {
	case <-ctx.Done():
		return trade.PrepStatus{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return trade.PrepStatus{}, res.Err
		}
		return res.Val.(trade.PrepStatus), nil
	}
}

// Invalidate drops the cached status of an order
func (c *CachedReader) Invalidate(ctx context.Context, orderID string) error {
	return c.store.Delete(ctx, CacheKey(orderID))
}

var _ trade.PrepStatusReader = (*CachedReader)(nil)
