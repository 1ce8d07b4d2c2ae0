// Package address classifies raw input strings as Solana addresses.
package address

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"

	"solana-address-checker/internal/domain"
)

// Length bounds for a base58-encoded 32-byte public key.
const (
	MinLength = 32
	MaxLength = 44
	keySize   = 32
)

// Validation messages.
const (
	MsgEmpty   = "Address is empty"
	MsgFormat  = "Invalid address format"
	MsgValid   = "Valid Solana address"
	formatName = "base58"
)

var base58Pattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]+$`)

// Validate trims raw and checks it is a base58 public key.
// Kind is always unknown here: wallets and mints share the format,
// the on-chain account later decides.
func Validate(raw string) domain.Address {
	trimmed := strings.TrimSpace(raw)
	a := domain.Address{
		Raw:        raw,
		Normalized: trimmed,
		Kind:       domain.KindUnknown,
		Format:     formatName,
		Length:     utf8.RuneCountInString(trimmed),
	}

	if trimmed == "" {
		a.Message = MsgEmpty
		return a
	}

	if a.Length < MinLength || a.Length > MaxLength || !base58Pattern.MatchString(trimmed) {
		a.Message = MsgFormat
		return a
	}

	a.Valid = true
	a.Message = MsgValid

	// Informational only: a well-formed string that is not a 32-byte key
	// simply has no account on chain.
	if decoded, err := base58.Decode(trimmed); err == nil && len(decoded) == keySize {
		a.PublicKey = true
		a.OnCurve = isOnCurve(decoded)
	}
	return a
}

// isOnCurve reports whether key is a valid ed25519 point.
// Program-derived addresses are deliberately off-curve and cannot sign.
func isOnCurve(key []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(key)
	return err == nil
}
