package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-cache-store/entry"
)

// MustEntry builds an entry on a pinned clock, failing the test on invalid
// input. The returned entry's expiration checks follow clk.
func MustEntry[T any](t *testing.T, clk *FixedClock, key string, value T, opts *entry.Options) *entry.CacheEntry[T] {
	t.Helper()

	factory := entry.NewFactory[T](entry.WithClock[T](clk.Now))
	e, err := factory.New(key, value, opts)
	if err != nil {
		t.Fatalf("failed to build entry %q: %v", key, err)
	}
	return e
}

// ExpireAt returns a pointer to the given instant, for Options literals.
func ExpireAt(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}

// LoadFixture loads test data from a fixture file. The path is relative to
// the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}
	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	if err := json.Unmarshal(LoadFixture(t, path), dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// WriteGolden writes expected test output to a golden file, creating the
// directory as needed.
func WriteGolden(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write golden file to %s: %v", path, err)
	}
}

// CompareWithGolden compares actual data against a golden file, creating the
// file with the actual data when it does not exist yet.
func CompareWithGolden(t *testing.T, path string, actual []byte) {
	t.Helper()

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Logf("golden file %s does not exist, creating it", path)
			WriteGolden(t, path, actual)
			return
		}
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("output mismatch for %s:\nExpected:\n%s\nActual:\n%s", path, expected, actual)
	}
}

// GoldenPath constructs a path to a golden file under testdata.
func GoldenPath(filename string) string {
	return filepath.Join("testdata", "golden", filename)
}
