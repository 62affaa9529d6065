package domain

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// Address is a validated base58-encoded Solana public key.
// Constructed through ParseAddress; never mutated afterwards.
type Address string

// ParseAddress validates raw as a Solana public key: 32-44 characters of
// base58 decoding to exactly 32 bytes.
func ParseAddress(raw string) (Address, error) {
	if len(raw) < 32 || len(raw) > 44 {
		return "", fmt.Errorf("address %q: length %d outside 32-44", raw, len(raw))
	}
	decoded, err := base58.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("address %q: %w", raw, err)
	}
	if len(decoded) != 32 {
		return "", fmt.Errorf("address %q: decodes to %d bytes, want 32", raw, len(decoded))
	}
	return Address(raw), nil
}

// String returns the base58 form.
func (a Address) String() string {
	return string(a)
}

// Equal reports whether two addresses refer to the same key.
func (a Address) Equal(other string) bool {
	return string(a) == other
}

// OnCurve reports whether the key lies on the ed25519 curve.
// Program-derived addresses are intentionally off-curve.
func (a Address) OnCurve() bool {
	decoded, err := base58.Decode(string(a))
	if err != nil || len(decoded) != 32 {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(decoded)
	return err == nil
}
