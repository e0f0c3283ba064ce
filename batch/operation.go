package batch

import (
	"fmt"

	"github.com/goliatone/go-cache-store/entry"
)

// OpKind tags the variant of a queued operation.
type OpKind int

const (
	OpInsert OpKind = iota
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("op(%d)", int(k))
}

// operation is one queued mutation, carrying enough state to be replayed on
// commit or discarded on rollback. Immutable once enqueued; only the owning
// batch mutates its queue.
type operation[T any] struct {
	kind   OpKind
	entity *entry.CacheEntry[T]
	key    string
}
