package batch

import (
	"errors"
	"fmt"
)

// ErrNilEntity reports a nil entry handed to AddInsert or AddUpdate.
var ErrNilEntity = errors.New("batch: entity is nil")

// ErrEmptyKey reports an empty key handed to AddDelete.
var ErrEmptyKey = errors.New("batch: key is empty")

// State identifies where a batch is in its lifecycle.
type State int

const (
	StateOpen State = iota
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled back"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// InvalidStateError reports an operation attempted after the batch left the
// Open state.
type InvalidStateError struct {
	BatchID string
	State   State
	Op      string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("batch %s: cannot %s, batch is %s", e.BatchID, e.Op, e.State)
}

// AlreadyCommittedError reports a second Commit on the same batch.
type AlreadyCommittedError struct {
	BatchID string
}

func (e *AlreadyCommittedError) Error() string {
	return fmt.Sprintf("batch %s: already committed", e.BatchID)
}

// OperationFailedError identifies which queued operation failed during
// commit and why. Index is the zero-based enqueue position.
type OperationFailedError struct {
	BatchID string
	Index   int
	Kind    OpKind
	Key     string
	Cause   error
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("batch %s: operation %d (%s %q) failed: %v", e.BatchID, e.Index, e.Kind, e.Key, e.Cause)
}

func (e *OperationFailedError) Unwrap() error { return e.Cause }
