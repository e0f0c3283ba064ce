// Package store is the bun-backed persistence provider for cache entries.
// It implements the batch.Store contract over SQLite or Postgres,
// materializes the mapper's declared schema, and serves the read path with
// lazy expiration checking, access tracking and an optional in-process
// read-through row cache.
package store

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cache-store/batch"
	"github.com/goliatone/go-cache-store/entry"
	"github.com/goliatone/go-cache-store/internal/cacheinfra"
	"github.com/goliatone/go-cache-store/mapper"
)

// Interface assertion to ensure EntryStore implements batch.Store[T].
var _ batch.Store[any] = (*EntryStore[any])(nil)

// EntryStore persists cache entries of type T through their EntryMapper.
// The mapper and the store must agree on the table; the store reads it from
// the mapper's schema. Safe for concurrent use: all state is the database
// handle, the stateless mapper and the internally synchronized row cache.
type EntryStore[T any] struct {
	db     *bun.DB
	mapper *mapper.EntryMapper[T]
	table  string
	rows   *cacheinfra.RowCache[*mapper.Row]
	log    zerolog.Logger
}

// Option customizes an EntryStore.
type Option[T any] func(*EntryStore[T]) error

// WithRowCache fronts reads with an in-process sturdyc cache. Writes through
// this store invalidate the affected key; writes from other processes are
// only picked up once the cached row's TTL lapses.
func WithRowCache[T any](cfg CacheConfig) Option[T] {
	return func(s *EntryStore[T]) error {
		rows, err := cacheinfra.NewRowCache[*mapper.Row](cfg.toInternal())
		if err != nil {
			return err
		}
		s.rows = rows
		return nil
	}
}

// WithLogger attaches a logger for read-path diagnostics. The default is a
// no-op logger.
func WithLogger[T any](log zerolog.Logger) Option[T] {
	return func(s *EntryStore[T]) error {
		s.log = log
		return nil
	}
}

// New creates an EntryStore over db using m for row mapping.
func New[T any](db *bun.DB, m *mapper.EntryMapper[T], opts ...Option[T]) (*EntryStore[T], error) {
	if m == nil {
		return nil, ErrNilMapper
	}

	s := &EntryStore[T]{
		db:     db,
		mapper: m,
		table:  m.Config().Table,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DB returns the underlying bun handle.
func (s *EntryStore[T]) DB() *bun.DB { return s.db }

// Mapper returns the store's entry mapper.
func (s *EntryStore[T]) Mapper() *mapper.EntryMapper[T] { return s.mapper }

// bunTx adapts bun.Tx to the batch.Tx scope contract.
type bunTx struct {
	tx bun.Tx
}

func (t *bunTx) Commit() error   { return t.tx.Commit() }
func (t *bunTx) Rollback() error { return t.tx.Rollback() }

// Begin opens the transaction scope a batch binds to.
func (s *EntryStore[T]) Begin(ctx context.Context) (batch.Tx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &bunTx{tx: tx}, nil
}

// ApplyInsert writes a new row for the entry inside the transaction scope.
func (s *EntryStore[T]) ApplyInsert(ctx context.Context, tx batch.Tx, e *entry.CacheEntry[T]) error {
	idb, err := s.idb(tx)
	if err != nil {
		return err
	}
	row, err := s.mapper.ToRow(e)
	if err != nil {
		return err
	}

	if _, err := idb.NewInsert().
		Model(row).
		ModelTableExpr("?", bun.Ident(s.table)).
		Exec(ctx); err != nil {
		return err
	}
	s.invalidate(e.Key)
	return nil
}

// ApplyUpdate rewrites the entry's row. With RetainHistory each update
// inserts a fresh (key, version) row, preserving history; otherwise the
// existing row is overwritten in place. No version precondition is checked
// either way: Version is advisory metadata, and concurrent writers to the
// same key resolve by last-commit-wins (see the batch package docs on lost
// updates).
func (s *EntryStore[T]) ApplyUpdate(ctx context.Context, tx batch.Tx, e *entry.CacheEntry[T]) error {
	idb, err := s.idb(tx)
	if err != nil {
		return err
	}
	row, err := s.mapper.ToRow(e)
	if err != nil {
		return err
	}

	if s.mapper.Config().RetainHistory {
		if _, err := idb.NewInsert().
			Model(row).
			ModelTableExpr("?", bun.Ident(s.table)).
			Exec(ctx); err != nil {
			return err
		}
		s.invalidate(e.Key)
		return nil
	}

	res, err := idb.NewUpdate().
		Model(row).
		ModelTableExpr("?", bun.Ident(s.table)).
		Where("key = ?", row.Key).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Key: row.Key}
	}
	s.invalidate(e.Key)
	return nil
}

// ApplyDelete tombstones the row for key inside the transaction scope. Rows
// stay behind for audit and version history; physical removal is a separate
// housekeeping concern. Deleting a key with no active row fails with
// NotFoundError.
func (s *EntryStore[T]) ApplyDelete(ctx context.Context, tx batch.Tx, key string) error {
	idb, err := s.idb(tx)
	if err != nil {
		return err
	}

	res, err := idb.NewUpdate().
		Model((*mapper.Row)(nil)).
		ModelTableExpr("?", bun.Ident(s.table)).
		Set("is_deleted = ?", true).
		Where("key = ?", key).
		Where("is_deleted = ?", false).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Key: key}
	}
	s.invalidate(key)
	return nil
}

func (s *EntryStore[T]) idb(tx batch.Tx) (bun.IDB, error) {
	if tx == nil {
		return s.db, nil
	}
	bt, ok := tx.(*bunTx)
	if !ok {
		return nil, ErrForeignTx
	}
	return bt.tx, nil
}

func (s *EntryStore[T]) cacheKey(key string) string {
	return cacheinfra.Key(s.table, key)
}

func (s *EntryStore[T]) invalidate(key string) {
	if s.rows != nil {
		s.rows.Delete(s.cacheKey(key))
	}
}
