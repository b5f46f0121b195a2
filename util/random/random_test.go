package random

import (
	"testing"
)

func TestTableCode(t *testing.T) {
	code := TableCode(6)
	if len(code) != 6 {
		t.Fatalf("expected 6 characters, got %d", len(code))
	}
	for _, c := range code {
		if c < 'a' || c > 'z' {
			t.Errorf("unexpected character %q in table code %s", c, code)
		}
	}
}

func TestNewSeedVaries(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		seen[NewSeed()] = true
	}
	if len(seen) < 2 {
		t.Error("expected varying seeds")
	}
}
