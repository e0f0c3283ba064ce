package codec_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-cache-store/codec"
	"github.com/goliatone/go-cache-store/pkg/testsupport"
)

func TestMsgpack_RoundTrip(t *testing.T) {
	s := codec.NewMsgpack[demoUser]()

	in := demoUser{ID: "u1", Name: "Ada"}
	data, err := s.Serialize(in)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	out, err := s.Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	s := codec.NewJSON[[]string]()

	data, err := s.Serialize([]string{"a", "b"})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	out, err := s.Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(out) != 2 || out[0] != "a" || out[1] != "b" {
		t.Errorf("round trip mismatch: %v", out)
	}
}

func TestJSON_DeserializeFixture(t *testing.T) {
	path := filepath.Join("testdata", "user.json")

	var want demoUser
	testsupport.LoadFixtureJSON(t, path, &want)

	got, err := codec.NewJSON[demoUser]().Deserialize(testsupport.LoadFixture(t, path))
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got != want {
		t.Errorf("fixture mismatch: %+v != %+v", got, want)
	}
}

func TestJSON_RejectsGarbage(t *testing.T) {
	s := codec.NewJSON[demoUser]()
	if _, err := s.Deserialize([]byte("{not json")); err == nil {
		t.Fatal("expected deserialize error")
	}
}

func TestTypeTagOf(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{codec.TypeTagOf[int](), "int"},
		{codec.TypeTagOf[[]string](), "[]string"},
		{codec.TypeTagOf[demoUser](), "codec_test.demoUser"},
		{codec.TypeTagOf[*demoUser](), "*codec_test.demoUser"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected tag %q, got %q", tt.want, tt.got)
		}
	}
}

func TestTaggedConstructors(t *testing.T) {
	if got := codec.NewMsgpackTagged[demoUser]("stable.users").TypeTag(); got != "stable.users" {
		t.Errorf("expected explicit msgpack tag, got %q", got)
	}
	if got := codec.NewJSONTagged[demoUser]("stable.users").TypeTag(); got != "stable.users" {
		t.Errorf("expected explicit json tag, got %q", got)
	}
}
