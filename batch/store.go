package batch

import (
	"context"

	"github.com/goliatone/go-cache-store/entry"
)

// Tx is the scoped transaction handle a persistence provider hands to the
// batch. The batch only ever commits it after a fully successful replay or
// rolls it back on disposal; it never begins a nested scope.
type Tx interface {
	Commit() error
	Rollback() error
}

// Store applies individual batch operations inside a transaction scope. The
// provider owns row mapping and isolation; the batch only sequences calls.
// Implementations must make operations applied through the same Tx invisible
// to other readers until that Tx commits.
type Store[T any] interface {
	Begin(ctx context.Context) (Tx, error)
	ApplyInsert(ctx context.Context, tx Tx, e *entry.CacheEntry[T]) error
	ApplyUpdate(ctx context.Context, tx Tx, e *entry.CacheEntry[T]) error
	ApplyDelete(ctx context.Context, tx Tx, key string) error
}
