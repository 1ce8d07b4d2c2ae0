// Package periods selects the lookback windows shown for a token from how
// long it has been active.
package periods

import (
	"fmt"
	"time"

	"solana-address-checker/internal/config"
	"solana-address-checker/internal/domain"
)

// Tier maps a maximum age to its windows. MaxAge 0 matches any age.
type Tier struct {
	MaxAge  time.Duration
	Windows []domain.Window
}

// DefaultTiers are used when no tiers are configured.
func DefaultTiers() []Tier {
	return []Tier{
		{MaxAge: time.Hour, Windows: []domain.Window{domain.Window5m, domain.Window1h}},
		{MaxAge: 24 * time.Hour, Windows: []domain.Window{domain.Window5m, domain.Window1h, domain.Window6h, domain.Window24h}},
		{MaxAge: 7 * 24 * time.Hour, Windows: []domain.Window{domain.Window1h, domain.Window6h, domain.Window24h, domain.Window3d, domain.Window7d}},
		{MaxAge: 0, Windows: []domain.Window{domain.Window24h, domain.Window3d, domain.Window7d, domain.Window30d}},
	}
}

// FromConfig converts configured tiers, falling back to DefaultTiers.
func FromConfig(cfg config.Periods) ([]Tier, error) {
	if len(cfg.Tiers) == 0 {
		return DefaultTiers(), nil
	}
	tiers := make([]Tier, 0, len(cfg.Tiers))
	for i, t := range cfg.Tiers {
		if t.MaxAge < 0 {
			return nil, fmt.Errorf("periods.tiers[%d]: negative max_age", i)
		}
		if len(t.Windows) == 0 {
			return nil, fmt.Errorf("periods.tiers[%d]: no windows", i)
		}
		tier := Tier{MaxAge: t.MaxAge}
		for _, w := range t.Windows {
			if !domain.Window(w).IsValid() {
				return nil, fmt.Errorf("periods.tiers[%d]: unknown window %q", i, w)
			}
			tier.Windows = append(tier.Windows, domain.Window(w))
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

// Select returns the windows of the first tier whose MaxAge covers the age
// at now. A zero firstSeen is unknown and selects the last tier.
func Select(tiers []Tier, firstSeen, now time.Time) []domain.Window {
	if len(tiers) == 0 {
		return nil
	}
	last := tiers[len(tiers)-1]
	if firstSeen.IsZero() {
		return clone(last.Windows)
	}

	age := now.Sub(firstSeen)
	if age < 0 {
		age = 0
	}
	for _, t := range tiers {
		if t.MaxAge == 0 || age <= t.MaxAge {
			return clone(t.Windows)
		}
	}
	return clone(last.Windows)
}

func clone(ws []domain.Window) []domain.Window {
	return append([]domain.Window(nil), ws...)
}
