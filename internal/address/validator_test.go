package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"solana-address-checker/internal/domain"
)

const (
	wsolMint   = "So11111111111111111111111111111111111111112"
	usdcMint   = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	systemProg = "11111111111111111111111111111111"
)

func TestValidate_ValidAddresses(t *testing.T) {
	for _, addr := range []string{wsolMint, usdcMint, systemProg} {
		a := Validate(addr)
		assert.True(t, a.Valid, addr)
		assert.Equal(t, addr, a.Normalized)
		assert.Equal(t, len(addr), a.Length)
		assert.Equal(t, domain.KindUnknown, a.Kind)
		assert.Equal(t, MsgValid, a.Message)
		assert.Equal(t, "base58", a.Format)
	}
}

func TestValidate_TrimsWhitespace(t *testing.T) {
	a := Validate("  \t" + usdcMint + "\n")
	assert.True(t, a.Valid)
	assert.Equal(t, usdcMint, a.Normalized)
	assert.Equal(t, 44, a.Length)
}

func TestValidate_Empty(t *testing.T) {
	a := Validate("   ")
	assert.False(t, a.Valid)
	assert.Equal(t, MsgEmpty, a.Message)
}

func TestValidate_RejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"too short":        "So1111111111111111111111111111",
		"too long":         strings.Repeat("A", 45),
		"contains zero":    "0PjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"contains O":       "OPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"contains I":       "IPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"contains l":       "lPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"evm address":      "0x4200000000000000000000000000000000000006",
		"inner whitespace": "EPjFWdd5AufqSSqeM2qN1 xzybapC8G4wEGGkZwyTDt1v",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			a := Validate(in)
			assert.False(t, a.Valid)
			assert.Equal(t, MsgFormat, a.Message)
		})
	}
}

func TestValidate_FormatDecidesValidity(t *testing.T) {
	cases := map[string]string{
		"min length":   strings.Repeat("2", 32),
		"max length z": strings.Repeat("z", 44),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			a := Validate(in)
			assert.True(t, a.Valid)
			assert.Equal(t, MsgValid, a.Message)
			assert.False(t, a.PublicKey)
			assert.False(t, a.OnCurve)
		})
	}
}

func TestValidate_PublicKeyHint(t *testing.T) {
	a := Validate(usdcMint)
	assert.True(t, a.PublicKey)

	sys := Validate(systemProg)
	assert.True(t, sys.PublicKey)
}

func TestValidate_Deterministic(t *testing.T) {
	assert.Equal(t, Validate(usdcMint), Validate(usdcMint))
}
