package utils

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCheckedAdd(t *testing.T) {
	got, err := CheckedAdd(40, 2)
	if err != nil || got != 42 {
		t.Fatalf("CheckedAdd(40, 2) = %d, %v", got, err)
	}

	if _, err := CheckedAdd(math.MaxInt64, 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if _, err := CheckedAdd(math.MaxInt64-1, 1); err != nil {
		t.Fatalf("boundary add must succeed: %v", err)
	}
	if _, err := CheckedAdd(math.MinInt64, -1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow on negative wrap, got %v", err)
	}
}

func TestWithinLen(t *testing.T) {
	if !WithinLen(strings.Repeat("a", 50), 50) {
		t.Fatal("exact bound must pass")
	}
	if WithinLen(strings.Repeat("a", 51), 50) {
		t.Fatal("bound + 1 must fail")
	}
	// Bounds count runes, not bytes.
	if !WithinLen(strings.Repeat("ü", 50), 50) {
		t.Fatal("50 multibyte runes must pass a 50-char bound")
	}
}
