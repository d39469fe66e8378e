package orderstatus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopdash/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *cache.InMemoryStore {
	t.Helper()
	store := cache.NewInMemoryStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, `order-status:{"id":"T3JkZXI6MQ=="}`, CacheKey("T3JkZXI6MQ=="))
	assert.Equal(t, `order-status:{"id":"a\"b"}`, CacheKey(`a"b`))
}

func TestCachedReader_HitAfterMiss(t *testing.T) {
	upstream := newCountingReader(map[string]string{"o1": "PACKED"})
	metrics := &recordedMetrics{}
	reader := NewCachedReader(upstream, newTestStore(t), time.Minute, WithRecorder(metrics))
	ctx := context.Background()

	first, err := reader.GetPrepStatus(ctx, "o1")
	require.NoError(t, err)
	second, err := reader.GetPrepStatus(ctx, "o1")
	require.NoError(t, err)

	assert.Equal(t, trade.PrepStatus{OrderStatus: "PACKED"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), upstream.calls.Load())
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
	assert.Equal(t, 1, metrics.fetches)
}

func TestCachedReader_ExpiresAfterStaleTime(t *testing.T) {
	upstream := newCountingReader(map[string]string{"o1": "PACKED"})
	reader := NewCachedReader(upstream, newTestStore(t), 20*time.Millisecond)
	ctx := context.Background()

	_, err := reader.GetPrepStatus(ctx, "o1")
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = reader.GetPrepStatus(ctx, "o1")
	require.NoError(t, err)

	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestCachedReader_CollapsesConcurrentFetches(t *testing.T) {
	upstream := newCountingReader(map[string]string{"o1": "READY"})
	upstream.release = make(chan struct{})
	reader := NewCachedReader(upstream, newTestStore(t), time.Minute)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]trade.PrepStatus, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = reader.GetPrepStatus(context.Background(), "o1")
		}()
	}

	// let every caller join the in-flight fetch before it completes
	require.Eventually(t, func() bool { return upstream.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(upstream.release)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, "READY", results[i].OrderStatus)
	}
	assert.Equal(t, int32(1), upstream.calls.Load())
}

func TestCachedReader_DoesNotCacheFailures(t *testing.T) {
	upstream := newCountingReader(map[string]string{"o1": "PACKED"})
	upstream.setError("o1", errors.New("boom"))
	metrics := &recordedMetrics{}
	reader := NewCachedReader(upstream, newTestStore(t), time.Minute, WithRecorder(metrics))
	ctx := context.Background()

	_, err := reader.GetPrepStatus(ctx, "o1")
	require.Error(t, err)

	upstream.clearError("o1")
	status, err := reader.GetPrepStatus(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "PACKED", status.OrderStatus)
	assert.Equal(t, int32(2), upstream.calls.Load())
	assert.Equal(t, 1, metrics.failed)
}

func TestCachedReader_CallerCancellationDoesNotCancelFetch(t *testing.T) {
	upstream := newCountingReader(map[string]string{"o1": "SHIPPED"})
	upstream.release = make(chan struct{})
	store := newTestStore(t)
	reader := NewCachedReader(upstream, store, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := reader.GetPrepStatus(ctx, "o1")
		done <- err
	}()

	require.Eventually(t, func() bool { return upstream.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(upstream.release)
	require.Eventually(t, func() bool {
		_, ok, _ := store.Get(context.Background(), CacheKey("o1"))
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestCachedReader_Invalidate(t *testing.T) {
	upstream := newCountingReader(map[string]string{"o1": "PACKED"})
	reader := NewCachedReader(upstream, newTestStore(t), time.Minute)
	ctx := context.Background()

	_, err := reader.GetPrepStatus(ctx, "o1")
	require.NoError(t, err)
	require.NoError(t, reader.Invalidate(ctx, "o1"))
	_, err = reader.GetPrepStatus(ctx, "o1")
	require.NoError(t, err)

	assert.Equal(t, int32(2), upstream.calls.Load())
}
