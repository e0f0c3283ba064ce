package batch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-cache-store/entry"
)

// TransactionBatch sequences insert/update/delete operations against one
// transaction scope and applies them atomically on Commit. See the package
// documentation for lifecycle and concurrency rules.
type TransactionBatch[T any] struct {
	id     string
	store  Store[T]
	tx     Tx
	ops    []operation[T]
	state  State
	closed bool

	log        zerolog.Logger
	onRollback func(kind OpKind, key string)
}

// Option customizes a batch at construction.
type Option[T any] func(*TransactionBatch[T])

// WithLogger attaches a logger used for commit-failure and rollback
// diagnostics. The default is a no-op logger.
func WithLogger[T any](log zerolog.Logger) Option[T] {
	return func(b *TransactionBatch[T]) {
		b.log = log
	}
}

// WithRollbackHook registers a hook invoked once per queued operation, in
// reverse enqueue order, when the batch rolls back. The hook is for
// in-memory bookkeeping only; the store-side undo belongs to the
// transaction scope.
func WithRollbackHook[T any](fn func(kind OpKind, key string)) Option[T] {
	return func(b *TransactionBatch[T]) {
		b.onRollback = fn
	}
}

// New begins a transaction scope on the store and returns an Open batch
// bound to it. The caller must Close the batch on every path.
func New[T any](ctx context.Context, store Store[T], opts ...Option[T]) (*TransactionBatch[T], error) {
	tx, err := store.Begin(ctx)
	if err != nil {
		return nil, err
	}

	b := &TransactionBatch[T]{
		id:    uuid.NewString(),
		store: store,
		tx:    tx,
		state: StateOpen,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// ID returns the batch identifier used in errors and logs.
func (b *TransactionBatch[T]) ID() string { return b.id }

// State returns the batch lifecycle state.
func (b *TransactionBatch[T]) State() State { return b.state }

// Len returns the number of queued operations.
func (b *TransactionBatch[T]) Len() int { return len(b.ops) }

// AddInsert enqueues an insert of the given entry.
func (b *TransactionBatch[T]) AddInsert(e *entry.CacheEntry[T]) error {
	if err := b.requireOpen("AddInsert"); err != nil {
		return err
	}
	if e == nil {
		return ErrNilEntity
	}
	b.ops = append(b.ops, operation[T]{kind: OpInsert, entity: e, key: e.Key})
	return nil
}

// AddUpdate enqueues an update of the given entry. Two updates to the same
// key apply sequentially; the later enqueue wins after commit.
func (b *TransactionBatch[T]) AddUpdate(e *entry.CacheEntry[T]) error {
	if err := b.requireOpen("AddUpdate"); err != nil {
		return err
	}
	if e == nil {
		return ErrNilEntity
	}
	b.ops = append(b.ops, operation[T]{kind: OpUpdate, entity: e, key: e.Key})
	return nil
}

// AddDelete enqueues a delete of the entry with the given key.
func (b *TransactionBatch[T]) AddDelete(key string) error {
	if err := b.requireOpen("AddDelete"); err != nil {
		return err
	}
	if key == "" {
		return ErrEmptyKey
	}
	b.ops = append(b.ops, operation[T]{kind: OpDelete, key: key})
	return nil
}

// Commit replays every queued operation strictly in enqueue order, then
// commits the underlying transaction scope. The first operation to fail
// aborts the batch with an OperationFailedError identifying its position and
// cause; the batch is then left for Close to roll back, so no partial
// application outlives the scope. A second Commit fails with
// AlreadyCommittedError.
func (b *TransactionBatch[T]) Commit(ctx context.Context) error {
	switch b.state {
	case StateCommitted:
		return &AlreadyCommittedError{BatchID: b.id}
	case StateRolledBack:
		return &InvalidStateError{BatchID: b.id, State: b.state, Op: "Commit"}
	}

	for i, op := range b.ops {
		if err := b.apply(ctx, op); err != nil {
			failure := &OperationFailedError{BatchID: b.id, Index: i, Kind: op.kind, Key: op.key, Cause: err}
			b.log.Error().Err(err).
				Str("batch_id", b.id).
				Int("index", i).
				Str("op", op.kind.String()).
				Str("key", op.key).
				Msg("batch operation failed, rolling back on close")
			return failure
		}
	}

	if err := b.tx.Commit(); err != nil {
		b.log.Error().Err(err).Str("batch_id", b.id).Msg("transaction commit failed")
		return err
	}
	b.state = StateCommitted
	return nil
}

// Rollback discards the batch: the rollback hook runs once per queued
// operation in reverse enqueue order and the batch moves to RolledBack. The
// store-side undo happens when the transaction scope is released by Close.
// Rolling back twice is a no-op; rolling back a committed batch fails with
// InvalidStateError.
func (b *TransactionBatch[T]) Rollback() error {
	switch b.state {
	case StateCommitted:
		return &InvalidStateError{BatchID: b.id, State: b.state, Op: "Rollback"}
	case StateRolledBack:
		return nil
	}

	if b.onRollback != nil {
		for i := len(b.ops) - 1; i >= 0; i-- {
			b.onRollback(b.ops[i].kind, b.ops[i].key)
		}
	}
	b.state = StateRolledBack
	return nil
}

// Close releases the transaction scope. A batch that never committed rolls
// back first, on every exit path, so a disposed batch is never partially
// applied. Close is idempotent.
func (b *TransactionBatch[T]) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	if b.state == StateCommitted {
		return nil
	}

	_ = b.Rollback()
	if err := b.tx.Rollback(); err != nil {
		b.log.Error().Err(err).Str("batch_id", b.id).Msg("transaction rollback failed")
		return err
	}
	return nil
}

// CloseWithError releases the batch and folds any rollback failure into err
// without masking it; the original error stays first in the join. Intended
// for error paths:
//
//	if err := b.Commit(ctx); err != nil {
//		return b.CloseWithError(err)
//	}
func (b *TransactionBatch[T]) CloseWithError(err error) error {
	cerr := b.Close()
	if cerr == nil {
		return err
	}
	if err == nil {
		return cerr
	}
	return errors.Join(err, cerr)
}

func (b *TransactionBatch[T]) requireOpen(op string) error {
	if b.state != StateOpen {
		return &InvalidStateError{BatchID: b.id, State: b.state, Op: op}
	}
	return nil
}

func (b *TransactionBatch[T]) apply(ctx context.Context, op operation[T]) error {
	switch op.kind {
	case OpInsert:
		return b.store.ApplyInsert(ctx, b.tx, op.entity)
	case OpUpdate:
		return b.store.ApplyUpdate(ctx, b.tx, op.entity)
	case OpDelete:
		return b.store.ApplyDelete(ctx, b.tx, op.key)
	}
	return nil
}
