package codec

import "github.com/puzpuzpuz/xsync/v3"

// Registry maps type tags to registered Serializer capabilities. Types are
// registered explicitly by the application at startup; there is no dynamic
// type discovery at run time. Safe for concurrent use.
type Registry struct {
	serializers *xsync.MapOf[string, any]
}

// NewRegistry creates an empty serializer registry.
func NewRegistry() *Registry {
	return &Registry{serializers: xsync.NewMapOf[string, any]()}
}

// Register records s under its type tag. Registering the same tag twice
// replaces the previous serializer; last registration wins.
func Register[T any](r *Registry, s Serializer[T]) {
	r.serializers.Store(s.TypeTag(), s)
}

// Resolve returns the Serializer registered for tag, or a RegistryError when
// the tag is unknown or was registered for a different value type.
func Resolve[T any](r *Registry, tag string) (Serializer[T], error) {
	v, ok := r.serializers.Load(tag)
	if !ok {
		return nil, &RegistryError{TypeTag: tag, Message: "no serializer registered"}
	}
	s, ok := v.(Serializer[T])
	if !ok {
		return nil, &RegistryError{TypeTag: tag, Message: "serializer registered for a different value type"}
	}
	return s, nil
}

// ResolveFor resolves the serializer registered under T's derived type tag.
func ResolveFor[T any](r *Registry) (Serializer[T], error) {
	return Resolve[T](r, TypeTagOf[T]())
}

// RegistryError reports a failed capability lookup.
type RegistryError struct {
	TypeTag string
	Message string
}

func (e *RegistryError) Error() string {
	return "codec registry: " + e.TypeTag + ": " + e.Message
}
