// Package normalization converts upstream payloads into the shared record
// schema. Every lookup is tolerant: a missing or malformed field leaves the
// record's sentinel in place.
package normalization

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/solana"
)

var thousand = decimal.NewFromInt(1000)

var magnitudes = []struct {
	size   decimal.Decimal
	suffix string
}{
	{decimal.New(1, 3), "K"},
	{decimal.New(1, 6), "M"},
	{decimal.New(1, 9), "B"},
}

// FormatNumber abbreviates v: 1500 → "1.5K", 2500000 → "2.5M",
// 1e9 → "1.0B". Values below 1000 are rounded and digit-grouped.
// Rounding is half away from zero at one decimal place.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.Unknown
	}

	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	idx := -1
	for i, m := range magnitudes {
		if d.GreaterThanOrEqual(m.size) {
			idx = i
		}
	}
	if idx < 0 {
		plain := d.Round(0)
		if plain.LessThan(thousand) {
			return sign + groupDigits(plain.String())
		}
		idx = 0
	}

	scaled := d.Div(magnitudes[idx].size).Round(1)
	// 999.95K rounds up to the next magnitude.
	if scaled.GreaterThanOrEqual(thousand) && idx+1 < len(magnitudes) {
		idx++
		scaled = d.Div(magnitudes[idx].size).Round(1)
	}
	return sign + scaled.StringFixed(1) + magnitudes[idx].suffix
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// LamportsToSOL converts lamports to SOL.
func LamportsToSOL(lamports int64) float64 {
	return decimal.NewFromInt(lamports).Div(decimal.NewFromInt(solana.LamportsPerSOL)).InexactFloat64()
}

// ScaleAmount converts a raw integer token amount to UI units.
func ScaleAmount(raw string, decimals int64) (float64, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil || decimals < 0 || decimals > 255 {
		return 0, false
	}
	return d.Shift(-int32(decimals)).InexactFloat64(), true
}

func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func dateOf(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.DateOnly)
}
