package codec

import "encoding/json"

// JSON serializes values as JSON. Useful when rows need to stay readable
// from SQL tooling; msgpack is the better default otherwise.
type JSON[T any] struct {
	tag string
}

// NewJSON creates a JSON serializer tagged with T's type name.
func NewJSON[T any]() JSON[T] {
	return JSON[T]{tag: TypeTagOf[T]()}
}

// NewJSONTagged creates a JSON serializer with an explicit type tag.
func NewJSONTagged[T any](tag string) JSON[T] {
	return JSON[T]{tag: tag}
}

func (j JSON[T]) Serialize(v T) ([]byte, error) {
	return json.Marshal(v)
}

func (j JSON[T]) Deserialize(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

func (j JSON[T]) TypeTag() string { return j.tag }
