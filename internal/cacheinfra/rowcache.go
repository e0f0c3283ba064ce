package cacheinfra

import (
	"context"
	"strings"

	"github.com/viccon/sturdyc"
)

// RowCache fronts store reads with an in-process sturdyc cache. T is the
// cached row type; values are cached per entry key. The generic parameter
// carries the type end to end, so no reflection shim is needed at the fetch
// boundary.
type RowCache[T any] struct {
	client *sturdyc.Client[T]
}

// NewRowCache validates cfg and builds the sturdyc client behind the cache.
func NewRowCache[T any](cfg Config) (*RowCache[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[T](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)
	return &RowCache[T]{client: client}, nil
}

// GetOrFetch returns the cached value for key, calling fetch on a miss and
// caching its result. Concurrent fetches for the same key are deduplicated
// by sturdyc.
func (c *RowCache[T]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	return c.client.GetOrFetch(ctx, key, fetch)
}

// Delete drops a single key so the next read refetches from the store.
func (c *RowCache[T]) Delete(key string) {
	c.client.Delete(key)
}

// DeleteByPrefix drops every key with the given prefix. Used to flush all
// cached rows of one table.
func (c *RowCache[T]) DeleteByPrefix(prefix string) {
	for _, key := range c.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			c.client.Delete(key)
		}
	}
}
