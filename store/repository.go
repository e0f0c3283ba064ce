package store

import (
	"context"
	"database/sql"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cache-store/batch"
	"github.com/goliatone/go-cache-store/entry"
	"github.com/goliatone/go-cache-store/mapper"
)

// Interface assertion to ensure RepositoryStore implements batch.Store[T].
var _ batch.Store[any] = (*RepositoryStore[any])(nil)

// RepositoryStore adapts a go-repository-bun repository over entry rows to
// the batch.Store contract, for applications that already manage the entry
// table through the repository layer. Only the transactional repository
// methods are used, so every batch operation stays inside the scope the
// batch opened.
//
// The repository must be registered over mapper.Row with the entry key as
// its id column. Deletes tombstone through the repository's update path,
// matching EntryStore semantics.
type RepositoryStore[T any] struct {
	db     *bun.DB
	repo   repository.Repository[*mapper.Row]
	mapper *mapper.EntryMapper[T]
}

// NewRepositoryStore creates the adapter. db must be the handle the
// repository executes against; Begin opens scopes on it directly.
func NewRepositoryStore[T any](db *bun.DB, repo repository.Repository[*mapper.Row], m *mapper.EntryMapper[T]) (*RepositoryStore[T], error) {
	if m == nil {
		return nil, ErrNilMapper
	}
	return &RepositoryStore[T]{db: db, repo: repo, mapper: m}, nil
}

// Begin opens the transaction scope a batch binds to.
func (s *RepositoryStore[T]) Begin(ctx context.Context) (batch.Tx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &bunTx{tx: tx}, nil
}

// ApplyInsert creates the entry's row through the repository.
func (s *RepositoryStore[T]) ApplyInsert(ctx context.Context, tx batch.Tx, e *entry.CacheEntry[T]) error {
	idb, err := s.idb(tx)
	if err != nil {
		return err
	}
	row, err := s.mapper.ToRow(e)
	if err != nil {
		return err
	}
	_, err = s.repo.CreateTx(ctx, idb, row)
	return err
}

// ApplyUpdate rewrites the entry's row through the repository. RetainHistory
// inserts a fresh (key, version) row instead of updating in place.
func (s *RepositoryStore[T]) ApplyUpdate(ctx context.Context, tx batch.Tx, e *entry.CacheEntry[T]) error {
	idb, err := s.idb(tx)
	if err != nil {
		return err
	}
	row, err := s.mapper.ToRow(e)
	if err != nil {
		return err
	}
	if s.mapper.Config().RetainHistory {
		_, err = s.repo.CreateTx(ctx, idb, row)
		return err
	}
	_, err = s.repo.UpdateTx(ctx, idb, row)
	return err
}

// ApplyDelete tombstones the row through the repository's update path.
func (s *RepositoryStore[T]) ApplyDelete(ctx context.Context, tx batch.Tx, key string) error {
	idb, err := s.idb(tx)
	if err != nil {
		return err
	}

	row, err := s.repo.GetByIDTx(ctx, idb, key)
	if err != nil {
		return &NotFoundError{Key: key}
	}
	if row.IsDeleted {
		return &NotFoundError{Key: key}
	}
	row.IsDeleted = true
	_, err = s.repo.UpdateTx(ctx, idb, row)
	return err
}

func (s *RepositoryStore[T]) idb(tx batch.Tx) (bun.IDB, error) {
	bt, ok := tx.(*bunTx)
	if !ok {
		return nil, ErrForeignTx
	}
	return bt.tx, nil
}
