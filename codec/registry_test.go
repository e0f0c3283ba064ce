package codec_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-cache-store/codec"
)

type demoUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := codec.NewRegistry()
	codec.Register(r, codec.NewMsgpack[demoUser]())

	s, err := codec.ResolveFor[demoUser](r)
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if s.TypeTag() != codec.TypeTagOf[demoUser]() {
		t.Errorf("expected tag %q, got %q", codec.TypeTagOf[demoUser](), s.TypeTag())
	}
}

func TestRegistry_UnknownTag(t *testing.T) {
	r := codec.NewRegistry()

	_, err := codec.Resolve[demoUser](r, "nope")
	if err == nil {
		t.Fatal("expected error for unknown tag")
	}

	var regErr *codec.RegistryError
	if !errors.As(err, &regErr) {
		t.Fatalf("expected RegistryError, got %T", err)
	}
	if regErr.TypeTag != "nope" {
		t.Errorf("expected tag nope in error, got %q", regErr.TypeTag)
	}
}

func TestRegistry_TypeMismatch(t *testing.T) {
	r := codec.NewRegistry()
	codec.Register(r, codec.NewMsgpackTagged[demoUser]("shared-tag"))

	if _, err := codec.Resolve[int](r, "shared-tag"); err == nil {
		t.Fatal("expected error resolving the tag for a different value type")
	}
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := codec.NewRegistry()
	codec.Register(r, codec.NewMsgpackTagged[demoUser]("users"))
	codec.Register(r, codec.NewJSONTagged[demoUser]("users"))

	s, err := codec.Resolve[demoUser](r, "users")
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if _, ok := s.(codec.JSON[demoUser]); !ok {
		t.Errorf("expected the later JSON registration to win, got %T", s)
	}
}
