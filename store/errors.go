package store

import (
	"errors"
	"fmt"
)

// ErrNilMapper reports a store constructed without an entry mapper.
var ErrNilMapper = errors.New("store: mapper is required")

// ErrForeignTx reports a transaction handle that was not produced by this
// store's Begin. Batches must stay bound to the store that opened them.
var ErrForeignTx = errors.New("store: transaction does not belong to this store")

// NotFoundError reports a key with no active row: either nothing was ever
// stored under it, or the row is a tombstone.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found", e.Key)
}

// ExpiredError reports a row that is present but past one of its deadlines.
// The read path surfaces this instead of silently deleting; physical removal
// is left to store housekeeping.
type ExpiredError struct {
	Key string
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("entry %q is expired", e.Key)
}
