package codec

import "reflect"

// Serializer converts a typed value to and from its persisted byte form.
// Implementations must be stateless and safe for concurrent use; mappers
// share a single Serializer across goroutines without locking.
type Serializer[T any] interface {
	Serialize(v T) ([]byte, error)
	Deserialize(data []byte) (T, error)

	// TypeTag returns the logical type name recorded alongside the payload
	// and checked against it on deserialization.
	TypeTag() string
}

// TypeTagOf derives the logical type name for T, e.g. "mypkg.User" or
// "[]string". It is the default registry key and persisted type tag.
func TypeTagOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
