package mapper

import (
	"errors"
	"fmt"
)

// ErrNilEntry reports a nil entry handed to ToRow.
var ErrNilEntry = errors.New("mapper: entry is nil")

// ErrNilRow reports a nil row handed to FromRow.
var ErrNilRow = errors.New("mapper: row is nil")

// ErrNilSerializer reports a mapper constructed without a serializer.
var ErrNilSerializer = errors.New("mapper: serializer is required")

// SerializationError reports a value the serializer rejected on the way to a
// row, or entry state that cannot be encoded. The stored row is untouched;
// mapping fails before any write.
type SerializationError struct {
	Key     string
	TypeTag string
	Cause   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize entry %q (%s): %v", e.Key, e.TypeTag, e.Cause)
}

func (e *SerializationError) Unwrap() error { return e.Cause }

// DeserializationError reports a row that could not be turned back into an
// entry, including type-tag mismatches under TypeTagStrict.
type DeserializationError struct {
	Key       string
	StoredTag string
	WantTag   string
	Cause     error
}

func (e *DeserializationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("deserialize entry %q: stored type tag %q does not match %q", e.Key, e.StoredTag, e.WantTag)
	}
	return fmt.Sprintf("deserialize entry %q (%s): %v", e.Key, e.StoredTag, e.Cause)
}

func (e *DeserializationError) Unwrap() error { return e.Cause }
