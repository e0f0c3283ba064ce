package entry_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-cache-store/entry"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    entry.Options
		wantErr bool
	}{
		{name: "zero value", opts: entry.Options{}},
		{name: "sliding expiration", opts: entry.Options{SlidingExpiration: time.Minute}},
		{name: "negative sliding expiration", opts: entry.Options{SlidingExpiration: -time.Minute}, wantErr: true},
		{name: "tags", opts: entry.Options{Tags: []string{"a", "b"}}},
		{name: "empty tag", opts: entry.Options{Tags: []string{"a", ""}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	_, err := entry.New("k1", "v", &entry.Options{SlidingExpiration: -time.Second})
	if err == nil {
		t.Fatal("expected error for negative sliding expiration")
	}
}
