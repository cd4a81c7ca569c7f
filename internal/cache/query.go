package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nkiryanov/eventdesk/internal/logger"
)

type QueryOption func(*queryOptions)

type queryOptions struct {
	logger logger.Logger
	now    func() time.Time
}

func WithLogger(l logger.Logger) QueryOption {
	return func(o *queryOptions) { o.logger = logger.OrNoOp(l) }
}

func WithClock(now func() time.Time) QueryOption {
	return func(o *queryOptions) { o.now = now }
}

// Query is one cached remote resource: a key, a fetch function and a ttl
type Query[T any] struct {
	store Store
	key   string
	ttl   time.Duration
	fetch func(ctx context.Context) (T, error)

	logger logger.Logger
	now    func() time.Time
}

func newQueryOptions(opts []QueryOption) queryOptions {
	o := queryOptions{
		logger: logger.NewNoOpLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewQuery[T any](store Store, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error), opts ...QueryOption) *Query[T] {
	o := newQueryOptions(opts)

	return &Query[T]{
		store:  store,
		key:    key,
		ttl:    ttl,
		fetch:  fetch,
		logger: o.logger.With("cache_key", key),
		now:    o.now,
	}
}

func (q *Query[T]) Key() string {
	return q.key
}

// Get returns the cached value while it is fresh and fetches otherwise
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	if v, ok := q.cached(ctx); ok {
		return v, nil
	}
	return q.load(ctx)
}

// Refresh drops whatever is cached and fetches again
func (q *Query[T]) Refresh(ctx context.Context) (T, error) {
	q.Invalidate(ctx)
	return q.load(ctx)
}

// Invalidate drops the cached value so the next Get fetches
func (q *Query[T]) Invalidate(ctx context.Context) {
	if err := q.store.Delete(ctx, q.key); err != nil {
		q.logger.Warn("Failed to invalidate cache entry", "error", err)
	}
}

func (q *Query[T]) cached(ctx context.Context) (T, bool) {
	var zero T

	e, ok, err := q.store.Get(ctx, q.key)
	if err != nil {
		q.logger.Warn("Cache read failed, fetching", "error", err)
		return zero, false
	}
	if !ok || isExpiredAt(e.FetchedAt, q.ttl, q.now()) {
		return zero, false
	}

	var v T
	if err := json.Unmarshal(e.Payload, &v); err != nil {
		q.logger.Warn("Corrupt cache entry, fetching", "error", err)
		return zero, false
	}

	q.logger.Debug("Cache hit", "fetched_at", e.FetchedAt)
	return v, true
}

func (q *Query[T]) load(ctx context.Context) (T, error) {
	v, err := q.fetch(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("fetch %s: %w", q.key, err)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		q.logger.Warn("Failed to encode value for cache", "error", err)
		return v, nil
	}

	e := Entry{Payload: payload, FetchedAt: q.now()}
	if err := q.store.Set(ctx, q.key, e, q.ttl); err != nil {
		q.logger.Warn("Cache write failed", "error", err)
	}

	return v, nil
}
