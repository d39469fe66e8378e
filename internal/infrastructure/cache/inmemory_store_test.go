package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestInMemoryStore_GetSet(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewInMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("returns stored value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", []byte(`{"order_status":"PACKED"}`), time.Minute))

		value, ok, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"order_status":"PACKED"}`, string(value))
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "copy", []byte("abc"), 0))
		value, _, _ := store.Get(ctx, "copy")
		value[0] = 'x'

		again, _, _ := store.Get(ctx, "copy")
		assert.Equal(t, "abc", string(again))
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		_, ok, err := store.Get(ctx, "short")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "gone", []byte("v"), 0))
		require.NoError(t, store.Delete(ctx, "gone"))
		_, ok, _ := store.Get(ctx, "gone")
		assert.False(t, ok)
		assert.NoError(t, store.Delete(ctx, "gone"))
	})
}

func TestInMemoryStore_Cleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewInMemoryStore(5 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Millisecond))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))

	assert.Eventually(t, func() bool { return store.Size() == 1 }, time.Second, 5*time.Millisecond)
}

func TestInMemoryStore_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewInMemoryStore(0)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewInMemoryStore(time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%5))
			_ = store.Set(ctx, key, []byte{byte(i)}, time.Millisecond)
			_, _, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()
}
