// Package di wires the cache-store components together: the serializer
// registry, the shared database handle, the row-cache configuration and the
// factories for mappers, stores and batches. Since Go methods cannot carry
// type parameters, the per-type constructors are package-level functions
// taking the container.
package di

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cache-store/batch"
	"github.com/goliatone/go-cache-store/codec"
	"github.com/goliatone/go-cache-store/mapper"
	"github.com/goliatone/go-cache-store/store"
)

// Container holds the singletons shared by every typed store: one codec
// registry, one database handle, one cache configuration and one logger.
type Container struct {
	registry *codec.Registry
	db       *bun.DB
	cacheCfg *store.CacheConfig
	log      zerolog.Logger
}

// Option customizes a Container.
type Option func(*Container)

// WithRowCache enables the in-process row cache on stores the container
// builds.
func WithRowCache(cfg store.CacheConfig) Option {
	return func(c *Container) {
		c.cacheCfg = &cfg
	}
}

// WithLogger sets the logger handed to batches and stores. The default is a
// no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Container) {
		c.log = log
	}
}

// WithRegistry replaces the container's codec registry, for applications
// that register serializers before wiring the container.
func WithRegistry(r *codec.Registry) Option {
	return func(c *Container) {
		c.registry = r
	}
}

// New creates a container around an opened database handle.
func New(db *bun.DB, opts ...Option) *Container {
	c := &Container{
		registry: codec.NewRegistry(),
		db:       db,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the container's codec registry.
func (c *Container) Registry() *codec.Registry { return c.registry }

// DB returns the container's database handle.
func (c *Container) DB() *bun.DB { return c.db }

// RegisterMsgpack registers the default msgpack serializer for T and returns
// it.
func RegisterMsgpack[T any](c *Container) codec.Serializer[T] {
	s := codec.NewMsgpack[T]()
	codec.Register(c.registry, s)
	return s
}

// NewMapper builds an EntryMapper for T, resolving T's serializer from the
// container registry. The serializer must have been registered first.
func NewMapper[T any](c *Container, cfg mapper.Config) (*mapper.EntryMapper[T], error) {
	s, err := codec.ResolveFor[T](c.registry)
	if err != nil {
		return nil, err
	}
	return mapper.New[T](cfg, s)
}

// NewEntryStore builds a bun-backed store for T over the container's
// database handle, with the container's row cache configuration applied.
func NewEntryStore[T any](c *Container, cfg mapper.Config) (*store.EntryStore[T], error) {
	m, err := NewMapper[T](c, cfg)
	if err != nil {
		return nil, err
	}

	opts := []store.Option[T]{store.WithLogger[T](c.log)}
	if c.cacheCfg != nil {
		opts = append(opts, store.WithRowCache[T](*c.cacheCfg))
	}
	return store.New[T](c.db, m, opts...)
}

// NewBatch begins a transaction batch against s with the container's logger
// attached.
func NewBatch[T any](ctx context.Context, c *Container, s batch.Store[T]) (*batch.TransactionBatch[T], error) {
	return batch.New[T](ctx, s, batch.WithLogger[T](c.log))
}
