package uuid

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	id := New()
	if !IsValid(id) {
		t.Fatalf("expected valid uuid, got %q", id)
	}
	// version nibble is the first character of the third group
	groups := strings.Split(id, "-")
	if len(groups) != 5 || groups[2][0] != '7' {
		t.Errorf("expected a version 7 uuid, got %q", id)
	}
}

func TestNew_TimeOrdered(t *testing.T) {
	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		if next <= prev {
			t.Fatalf("expected %q to sort after %q", next, prev)
		}
		prev = next
	}
}

func TestParse(t *testing.T) {
	t.Run("normalizes_case", func(t *testing.T) {
		got, err := Parse("0190A4B2-7C1D-7E2F-8A3B-4C5D6E7F8091")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "0190a4b2-7c1d-7e2f-8a3b-4c5d6e7f8091" {
			t.Errorf("unexpected normalized value %q", got)
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := Parse("not-a-uuid"); err == nil {
			t.Error("expected error for invalid uuid")
		}
		if IsValid("") {
			t.Error("empty string should not be valid")
		}
	})
}
