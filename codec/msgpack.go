package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is the default Serializer implementation. MessagePack keeps
// payloads compact and round-trips Go zero values without the ambiguity
// JSON has around missing vs empty fields.
type Msgpack[T any] struct {
	tag string
}

// NewMsgpack creates a msgpack serializer tagged with T's type name.
func NewMsgpack[T any]() Msgpack[T] {
	return Msgpack[T]{tag: TypeTagOf[T]()}
}

// NewMsgpackTagged creates a msgpack serializer with an explicit type tag,
// for callers that persist under a stable name decoupled from the Go type.
func NewMsgpackTagged[T any](tag string) Msgpack[T] {
	return Msgpack[T]{tag: tag}
}

func (m Msgpack[T]) Serialize(v T) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (m Msgpack[T]) Deserialize(data []byte) (T, error) {
	var v T
	err := msgpack.Unmarshal(data, &v)
	return v, err
}

func (m Msgpack[T]) TypeTag() string { return m.tag }
