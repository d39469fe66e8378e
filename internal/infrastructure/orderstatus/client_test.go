package orderstatus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopdash/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srvURL string, retries int) *Client {
	return NewClient(config.OrderStatusConfig{
		APIURL:           srvURL,
		Timeout:          time.Second,
		MaxRetries:       retries,
		MaxResponseBytes: 1024,
	}, WithInitialBackoff(time.Millisecond))
}

func TestClient_GetPrepStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "T3JkZXI6MQ==", r.URL.Query().Get("orderId"))
		assert.Equal(t, "abc", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_status":"PACKED"}`))
	}))
	defer srv.Close()

	status, err := newTestClient(srv.URL+"/status?key=abc", 0).GetPrepStatus(context.Background(), "T3JkZXI6MQ==")
	require.NoError(t, err)
	assert.Equal(t, "PACKED", status.OrderStatus)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"order_status":"READY"}`))
	}))
	defer srv.Close()

	status, err := newTestClient(srv.URL, 3).GetPrepStatus(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "READY", status.OrderStatus)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).GetPrepStatus(context.Background(), "1")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).GetPrepStatus(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_BoundsResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order_status":"` + strings.Repeat("x", 4096) + `"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).GetPrepStatus(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode order status response")
}

func TestClient_NotConfigured(t *testing.T) {
	_, err := newTestClient("", 0).GetPrepStatus(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL, 5).GetPrepStatus(ctx, "1")
	require.Error(t, err)
}
