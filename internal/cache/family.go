package cache

import (
	"context"
	"time"
)

// Family is the set of queries over one resource that differ only by request parameters.
// A mutation of the resource invalidates every member at once, wherever it was cached
type Family[T any] struct {
	store  Store
	prefix string
	ttl    time.Duration
	opts   []QueryOption
}

func NewFamily[T any](store Store, prefix string, ttl time.Duration, opts ...QueryOption) *Family[T] {
	return &Family[T]{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		opts:   opts,
	}
}

func (f *Family[T]) Query(fetch func(ctx context.Context) (T, error), parts ...any) *Query[T] {
	key := Key(append([]any{f.prefix}, parts...)...)
	return NewQuery(f.store, key, f.ttl, fetch, f.opts...)
}

// InvalidateAll drops every member of the family from the store, not only the ones this value queried
func (f *Family[T]) InvalidateAll(ctx context.Context) {
	if err := f.store.DeletePrefix(ctx, f.prefix+"|"); err != nil {
		newQueryOptions(f.opts).logger.Warn("Failed to invalidate cache family", "prefix", f.prefix, "error", err)
	}
}
