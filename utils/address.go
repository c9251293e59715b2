// utils/address.go
package utils

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/mr-tron/base58"
)

// Seed tags, one per record type. The tag is always the first seed component
// so the address spaces of different record types cannot collide.
const (
	SeedProfile    = "user"
	SeedBounty     = "bounty"
	SeedSubmission = "submission"
	SeedEscrow     = "bounty-escrow"
)

// DeriveAddress computes the deterministic storage address for a record from
// its seed components: sha256 over the length-prefixed components, base58
// encoded. Same seeds always yield the same address, which is what makes the
// unique index on the address column a per-seed uniqueness guarantee.
func DeriveAddress(seeds ...string) string {
	h := sha256.New()
	var lenBuf [4]byte
	for _, s := range seeds {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
		h.Write(lenBuf[:])
		h.Write([]byte(s))
	}
	return base58.Encode(h.Sum(nil))
}

// ValidAddress reports whether s decodes as a 32-byte base58 key, the shape
// of both signer addresses and derived record addresses.
func ValidAddress(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == 32
}
