package utils

import (
	"bytes"
	"testing"

	"github.com/mr-tron/base58"
)

func TestDeriveAddressDeterministic(t *testing.T) {
	a := DeriveAddress(SeedBounty, "creator1", "fix-bug")
	b := DeriveAddress(SeedBounty, "creator1", "fix-bug")
	if a != b {
		t.Fatalf("same seeds must derive the same address: %q vs %q", a, b)
	}
	if !ValidAddress(a) {
		t.Fatalf("derived address %q is not a valid 32-byte base58 key", a)
	}
}

func TestDeriveAddressDistinctSeeds(t *testing.T) {
	base := DeriveAddress(SeedBounty, "creator1", "fix-bug")
	for _, other := range []string{
		DeriveAddress(SeedBounty, "creator2", "fix-bug"),
		DeriveAddress(SeedBounty, "creator1", "fix-bugs"),
		DeriveAddress(SeedProfile, "creator1", "fix-bug"),
	} {
		if other == base {
			t.Fatalf("different seeds derived the same address %q", base)
		}
	}
}

func TestDeriveAddressLengthPrefixing(t *testing.T) {
	// Without length prefixes ("ab","c") and ("a","bc") would hash the same.
	if DeriveAddress("ab", "c") == DeriveAddress("a", "bc") {
		t.Fatal("seed component boundaries must affect the derived address")
	}
}

func TestValidAddress(t *testing.T) {
	key := base58.Encode(bytes.Repeat([]byte{7}, 32))
	if !ValidAddress(key) {
		t.Fatalf("expected %q to be valid", key)
	}
	if ValidAddress("not-base58-0OIl") {
		t.Fatal("malformed base58 accepted")
	}
	short := base58.Encode([]byte("too short"))
	if ValidAddress(short) {
		t.Fatal("non-32-byte key accepted")
	}
}
