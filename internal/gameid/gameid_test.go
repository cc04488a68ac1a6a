package gameid

import (
	"strings"
	"testing"
)

func TestGenerateFormat(t *testing.T) {
	id := Generate()
	if len(id) != 26 {
		t.Fatalf("expected 26 characters, got %d: %q", len(id), id)
	}
	for _, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			t.Errorf("character %q not in base32 alphabet", c)
		}
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := Generate()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestEncodeBase32KnownValues(t *testing.T) {
	var zero [16]byte
	if got := encodeBase32(zero); got != strings.Repeat("0", 26) {
		t.Errorf("all-zero UUID should encode to all zeros, got %s", got)
	}

	var ones [16]byte
	for i := range ones {
		ones[i] = 0xff
	}
	got := encodeBase32(ones)
	if len(got) != 26 {
		t.Fatalf("expected 26 characters, got %d", len(got))
	}
	// 128 bits is not a multiple of 5; the last character carries only
	// 3 data bits, left-shifted into the high positions.
	if !strings.HasPrefix(got, strings.Repeat("z", 25)) {
		t.Errorf("all-ones UUID should lead with 25 z characters, got %s", got)
	}
}
