package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-cache-store/entry"
	"github.com/goliatone/go-cache-store/mapper"
)

// Get loads the active entry for key. Tombstoned keys and keys with no row
// fail with NotFoundError. Expiration is evaluated lazily here, at read
// time: a loaded entry past any of its deadlines fails with ExpiredError and
// is dropped from the hot row cache, but the stored row is left in place.
// Successful reads are tracked: AccessCount and LastAccessTime are bumped on
// the returned entry and persisted best-effort.
//
// With RetainHistory the newest version of the key is returned.
func (s *EntryStore[T]) Get(ctx context.Context, key string) (*entry.CacheEntry[T], error) {
	row, err := s.loadRow(ctx, key)
	if err != nil {
		return nil, err
	}

	e, err := s.mapper.FromRow(row)
	if err != nil {
		return nil, err
	}
	if e.IsDeleted {
		return nil, &NotFoundError{Key: key}
	}
	if e.IsExpired() {
		s.invalidate(key)
		return nil, &ExpiredError{Key: key}
	}

	e.Touch()
	if err := s.recordAccess(ctx, e); err != nil {
		// Access statistics are advisory; a failed bump must not fail the read.
		s.log.Warn().Err(err).Str("key", key).Msg("failed to record entry access")
	}
	return e, nil
}

// GetVersion loads one specific stored version of key, tombstones included.
// Only meaningful with RetainHistory; without it the single stored version
// is matched exactly.
func (s *EntryStore[T]) GetVersion(ctx context.Context, key string, version int64) (*entry.CacheEntry[T], error) {
	row := new(mapper.Row)
	err := s.db.NewSelect().
		Model(row).
		ModelTableExpr("? AS ce", bun.Ident(s.table)).
		Where("key = ?", key).
		Where("version = ?", version).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Key: key}
	}
	if err != nil {
		return nil, err
	}
	return s.mapper.FromRow(row)
}

func (s *EntryStore[T]) loadRow(ctx context.Context, key string) (*mapper.Row, error) {
	fetch := func(ctx context.Context) (*mapper.Row, error) {
		row := new(mapper.Row)
		err := s.db.NewSelect().
			Model(row).
			ModelTableExpr("? AS ce", bun.Ident(s.table)).
			Where("key = ?", key).
			OrderExpr("version DESC").
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Key: key}
		}
		if err != nil {
			return nil, err
		}
		return row, nil
	}

	if s.rows == nil {
		return fetch(ctx)
	}
	return s.rows.GetOrFetch(ctx, s.cacheKey(key), fetch)
}

// recordAccess persists the bumped access statistics. Applied outside any
// batch scope; access tracking is not part of the transactional contract.
// The count increments in SQL rather than from the entry so it stays
// monotonic even when the read was served from the hot row cache.
func (s *EntryStore[T]) recordAccess(ctx context.Context, e *entry.CacheEntry[T]) error {
	if e.LastAccessTime == nil {
		return nil
	}

	q := s.db.NewUpdate().
		Model((*mapper.Row)(nil)).
		ModelTableExpr("?", bun.Ident(s.table)).
		Set("access_count = access_count + 1").
		Set("last_access_time = ?", e.LastAccessTime.UTC().Unix()).
		Where("key = ?", e.Key)
	if s.mapper.Config().RetainHistory {
		q = q.Where("version = ?", e.Version)
	}

	_, err := q.Exec(ctx)
	return err
}
