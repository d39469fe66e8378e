package orderstatus

import (
	"context"
	"fmt"
	"time"

	"github.com/graph-gophers/dataloader"
	"github.com/shopdash/backend/internal/domain/trade"
	"golang.org/x/sync/errgroup"
)

type loaderCtxKey struct{}

// Loader batches the status lookups of one request. Each batch fetches its
// keys concurrently, bounded by the configured concurrency; a failed key does
// not fail the others.
type Loader struct {
	loader *dataloader.Loader
}

// NewLoader creates a request-scoped loader over reader
func NewLoader(reader trade.PrepStatusReader, wait time.Duration, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = 1
	}

	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))

		g := new(errgroup.Group)
		g.SetLimit(concurrency)
		for i, key := range keys {
			g.Go(func() error {
				status, err := reader.GetPrepStatus(ctx, key.String())
				if err != nil {
					results[i] = &dataloader.Result{Error: err}
					return nil
				}
				results[i] = &dataloader.Result{Data: status}
				return nil
			})
		}
		_ = g.Wait()

		return results
	}

	return &Loader{loader: dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(wait))}
}

// GetPrepStatus loads one order's status through the batch
func (l *Loader) GetPrepStatus(ctx context.Context, orderID string) (trade.PrepStatus, error) {
	data, err := l.loader.Load(ctx, dataloader.StringKey(orderID))()
	if err != nil {
		return trade.PrepStatus{}, err
	}
	status, ok := data.(trade.PrepStatus)
	if !ok {
		return trade.PrepStatus{}, fmt.Errorf("unexpected order status type %T", data)
	}
	return status, nil
}

// LoaderFactory creates request-scoped loaders with shared settings
type LoaderFactory struct {
	reader      trade.PrepStatusReader
	wait        time.Duration
	concurrency int
}

// NewLoaderFactory creates a LoaderFactory
func NewLoaderFactory(reader trade.PrepStatusReader, wait time.Duration, concurrency int) *LoaderFactory {
	return &LoaderFactory{reader: reader, wait: wait, concurrency: concurrency}
}

// New returns a fresh loader; loaders must not outlive their request
func (f *LoaderFactory) New() *Loader {
	return NewLoader(f.reader, f.wait, f.concurrency)
}

// WithLoader attaches a request-scoped loader to ctx
func WithLoader(ctx context.Context, l *Loader) context.Context {
	return context.WithValue(ctx, loaderCtxKey{}, l)
}

// LoaderFromContext returns the request's loader, or nil
func LoaderFromContext(ctx context.Context) *Loader {
	if l, ok := ctx.Value(loaderCtxKey{}).(*Loader); ok {
		return l
	}
	return nil
}

// ContextReader reads through the request's loader when one is attached,
// and through fallback otherwise.
type ContextReader struct {
	fallback trade.PrepStatusReader
}

// NewContextReader creates a ContextReader
func NewContextReader(fallback trade.PrepStatusReader) *ContextReader {
	return &ContextReader{fallback: fallback}
}

// GetPrepStatus implements trade.PrepStatusReader
func (r *ContextReader) GetPrepStatus(ctx context.Context, orderID string) (trade.PrepStatus, error) {
	if l := LoaderFromContext(ctx); l != nil {
		return l.GetPrepStatus(ctx, orderID)
	}
	return r.fallback.GetPrepStatus(ctx, orderID)
}

var (
	_ trade.PrepStatusReader = (*Loader)(nil)
	_ trade.PrepStatusReader = (*ContextReader)(nil)
)
