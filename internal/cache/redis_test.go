package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/eventdesk/internal/testutil"
)

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("redis container tests skipped in short mode")
	}

	rc := testutil.StartRedisContainer(t)
	t.Cleanup(rc.Terminate)

	store := NewRedisStore(rc.Client, "test:")
	fetchedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("miss", func(t *testing.T) {
		_, ok, err := store.Get(t.Context(), "absent")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set get delete", func(t *testing.T) {
		err := store.Set(t.Context(), "guests|1", Entry{Payload: []byte(`[1,2]`), FetchedAt: fetchedAt}, time.Minute)
		require.NoError(t, err)

		e, ok, err := store.Get(t.Context(), "guests|1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[1,2]`, string(e.Payload))
		assert.True(t, fetchedAt.Equal(e.FetchedAt))

		ttl, err := rc.Client.TTL(t.Context(), "test:guests|1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))

		require.NoError(t, store.Delete(t.Context(), "guests|1"))
		_, ok, err = store.Get(t.Context(), "guests|1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("query over redis", func(t *testing.T) {
		calls := 0
		q := NewQuery(store, "dashboard|7", time.Hour, func(_ context.Context) (int, error) {
			calls++
			return 42, nil
		})

		for range 3 {
			v, err := q.Get(t.Context())
			require.NoError(t, err)
			assert.Equal(t, 42, v)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("family invalidated from another store value", func(t *testing.T) {
		other := NewRedisStore(rc.Client, "test:")
		for _, key := range []string{"guests|7|1", "guests|7|2", "guests|[x]*|3", "dashboard|7"} {
			require.NoError(t, store.Set(t.Context(), key, Entry{Payload: []byte(`1`), FetchedAt: fetchedAt}, time.Minute))
		}

		NewFamily[int](other, "guests", time.Hour).InvalidateAll(t.Context())

		for _, key := range []string{"guests|7|1", "guests|7|2", "guests|[x]*|3"} {
			_, ok, err := store.Get(t.Context(), key)
			require.NoError(t, err)
			assert.False(t, ok, key)
		}
		_, ok, err := store.Get(t.Context(), "dashboard|7")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("pattern characters in prefix match literally", func(t *testing.T) {
		require.NoError(t, store.Set(t.Context(), "guestsX|1", Entry{Payload: []byte(`1`), FetchedAt: fetchedAt}, time.Minute))

		require.NoError(t, store.DeletePrefix(t.Context(), "guests?"))

		_, ok, err := store.Get(t.Context(), "guestsX|1")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
