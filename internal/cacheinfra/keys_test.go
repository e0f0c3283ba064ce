package cacheinfra

import (
	"strings"
	"testing"
)

func TestKey_JoinsParts(t *testing.T) {
	if got := Key("cache_entries", "acct:1"); got != "cache_entries::acct:1" {
		t.Errorf("unexpected key %q", got)
	}
	if got := Key(); got != "" {
		t.Errorf("expected empty key for no parts, got %q", got)
	}
}

func TestKey_Deterministic(t *testing.T) {
	long := strings.Repeat("k", 500)
	a := Key("tbl", long)
	b := Key("tbl", long)
	if a != b {
		t.Errorf("equal parts must produce equal keys: %q != %q", a, b)
	}
}

func TestKey_LongKeysCollapseToDigest(t *testing.T) {
	long := strings.Repeat("k", 500)
	got := Key("tbl", long)

	if len(got) > maxKeyLen {
		t.Errorf("digested key still too long: %d bytes", len(got))
	}
	if !strings.HasPrefix(got, "tbl"+KeySeparator) {
		t.Errorf("digested key must keep its first segment, got %q", got)
	}
	if other := Key("tbl", strings.Repeat("j", 500)); other == got {
		t.Error("different parts must not collide after digesting")
	}
}
