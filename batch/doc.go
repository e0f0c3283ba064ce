// Package batch groups entry mutations into one all-or-nothing transactional
// unit. A TransactionBatch is an ordered queue of insert/update/delete
// operations bound to a single transaction scope obtained from a Store; on
// Commit the operations replay strictly in enqueue order, and the first
// failure aborts the whole batch with no partial application visible once
// the scope is released.
//
// # Lifecycle
//
// Open -> Add* (any number) -> Committed, or RolledBack via an explicit
// Rollback or implicitly when a never-committed batch is closed. Close
// releases the transaction scope on every exit path, so the idiomatic usage
// is:
//
//	b, err := batch.New[User](ctx, store)
//	if err != nil {
//		return err
//	}
//	defer b.Close()
//
//	if err := b.AddInsert(e); err != nil {
//		return err
//	}
//	return b.Commit(ctx)
//
// A batch is a single-writer value bound to one transaction scope. Add*,
// Commit, Rollback and Close must be serialized by the caller; the batch
// holds no internal locking.
//
// # Lost updates
//
// Commit performs no optimistic version check: the entry Version field is
// advisory metadata, not an enforced precondition. Two batches that each
// read-modify-write the same key under snapshot-style isolation can both
// succeed, and whichever commits last silently overwrites the other's
// change. Callers that need stronger guarantees must arrange them at the
// store's isolation level.
package batch
