package orderstatus

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopdash/backend/internal/domain/trade"
)

// countingReader returns statuses from a map and counts upstream calls
type countingReader struct {
	mu       sync.Mutex
	statuses map[string]string
	errs     map[string]error
	delay    time.Duration
	calls    atomic.Int32
	release  chan struct{}
}

func newCountingReader(statuses map[string]string) *countingReader {
	return &countingReader{statuses: statuses, errs: map[string]error{}}
}

func (r *countingReader) GetPrepStatus(ctx context.Context, orderID string) (trade.PrepStatus, error) {
	r.calls.Add(1)
	if r.release != nil {
		<-r.release
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.errs[orderID]; err != nil {
		return trade.PrepStatus{}, err
	}
	return trade.PrepStatus{OrderStatus: r.statuses[orderID]}, nil
}

func (r *countingReader) setError(orderID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[orderID] = err
}

func (r *countingReader) clearError(orderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.errs, orderID)
}

type recordedMetrics struct {
	mu      sync.Mutex
	hits    int
	misses  int
	fetches int
	failed  int
}

func (m *recordedMetrics) RecordOrderStatusCache(_ context.Context, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func (m *recordedMetrics) RecordOrderStatusFetch(_ context.Context, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if err != nil {
		m.failed++
	}
}
