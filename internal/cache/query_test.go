package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type counter struct {
	calls int
	value []string
	err   error
}

func (c *counter) fetch(context.Context) ([]string, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.value, nil
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, errors.New("store is down")
}

func (brokenStore) Set(context.Context, string, Entry, time.Duration) error {
	return errors.New("store is down")
}

func (brokenStore) Delete(context.Context, string) error {
	return errors.New("store is down")
}

func (brokenStore) DeletePrefix(context.Context, string) error {
	return errors.New("store is down")
}

func TestQuery(t *testing.T) {
	ctx := context.Background()

	setup := func() (*Query[[]string], *counter, *fakeClock, *MemoryStore) {
		clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
		c := &counter{value: []string{"wine", "beer"}}
		store := NewMemoryStore()
		q := NewQuery(store, Key("beverages", "categories"), 30*time.Minute, c.fetch, WithClock(clock.Now))
		return q, c, clock, store
	}

	t.Run("first get fetches and stores", func(t *testing.T) {
		q, c, clock, store := setup()

		got, err := q.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"wine", "beer"}, got)
		assert.Equal(t, 1, c.calls)

		e, ok, err := store.Get(ctx, q.Key())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, clock.Now(), e.FetchedAt)
	})

	t.Run("fresh entry served from cache", func(t *testing.T) {
		q, c, clock, _ := setup()

		_, err := q.Get(ctx)
		require.NoError(t, err)
		clock.Advance(29 * time.Minute)

		got, err := q.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"wine", "beer"}, got)
		assert.Equal(t, 1, c.calls, "fresh entry must not refetch")
	})

	t.Run("stale entry refetched", func(t *testing.T) {
		q, c, clock, _ := setup()

		_, err := q.Get(ctx)
		require.NoError(t, err)
		clock.Advance(30 * time.Minute)
		c.value = []string{"water"}

		got, err := q.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"water"}, got)
		assert.Equal(t, 2, c.calls)
	})

	t.Run("refresh always fetches", func(t *testing.T) {
		q, c, _, _ := setup()

		_, err := q.Get(ctx)
		require.NoError(t, err)

		_, err = q.Refresh(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, c.calls)
	})

	t.Run("invalidate forces next get to fetch", func(t *testing.T) {
		q, c, _, store := setup()

		_, err := q.Get(ctx)
		require.NoError(t, err)

		q.Invalidate(ctx)
		_, ok, _ := store.Get(ctx, q.Key())
		require.False(t, ok)

		_, err = q.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, c.calls)
	})

	t.Run("fetch error not cached", func(t *testing.T) {
		q, c, _, store := setup()
		fetchErr := errors.New("backend down")
		c.err = fetchErr

		_, err := q.Get(ctx)

		require.ErrorIs(t, err, fetchErr)
		_, ok, _ := store.Get(ctx, q.Key())
		assert.False(t, ok)
	})

	t.Run("corrupt entry treated as miss", func(t *testing.T) {
		q, c, clock, store := setup()
		err := store.Set(ctx, q.Key(), Entry{Payload: []byte(`{"not":"a list"}`), FetchedAt: clock.Now()}, time.Hour)
		require.NoError(t, err)

		got, err := q.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"wine", "beer"}, got)
		assert.Equal(t, 1, c.calls)
	})

	t.Run("broken store degrades to plain fetch", func(t *testing.T) {
		c := &counter{value: []string{"juice"}}
		q := NewQuery(brokenStore{}, "k", time.Hour, c.fetch)

		got, err := q.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"juice"}, got)

		_, err = q.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, c.calls)

		q.Invalidate(ctx) // must not panic or fail
	})
}
