// Package scoring derives trust, activity and overall scores from
// normalized records. Score is pure.
package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"solana-address-checker/internal/domain"
)

// Weights are the trust deductions per risk indicator.
type Weights struct {
	MintAuthority    int
	FreezeAuthority  int
	TopHolder        int
	Concentration    int
	LowLiquidity     int
	YoungDomain      int
	NoSocials        int
	UnknownRegistrar int
}

// Config holds scoring thresholds and weights.
type Config struct {
	Weights Weights

	TopHolderPercent     float64 // top1 share above this is a risk
	ConcentrationPercent float64 // top5 share above this is a risk
	MinLiquidityUSD      float64
	MinDomainAge         time.Duration

	// Activity saturates at 10^TxDecades transactions and 10^HolderDecades holders.
	TxDecades     float64
	HolderDecades float64
	TxPoints      float64
	HolderPoints  float64

	TrustWeight float64 // overall = TrustWeight*trust + (1-TrustWeight)*activity

	LowRiskMin  int // overall >= LowRiskMin is Low
	HighRiskMax int // overall <= HighRiskMax is High
}

// DefaultConfig returns the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			MintAuthority:    20,
			FreezeAuthority:  15,
			TopHolder:        15,
			Concentration:    10,
			LowLiquidity:     15,
			YoungDomain:      10,
			NoSocials:        10,
			UnknownRegistrar: 5,
		},
		TopHolderPercent:     20,
		ConcentrationPercent: 50,
		MinLiquidityUSD:      10_000,
		MinDomainAge:         90 * 24 * time.Hour,
		TxDecades:            3,
		HolderDecades:        4,
		TxPoints:             60,
		HolderPoints:         40,
		TrustWeight:          0.6,
		LowRiskMin:           70,
		HighRiskMax:          40,
	}
}

// Input is the merged record set for one address.
type Input struct {
	Account      domain.AccountRecord
	Transactions domain.TransactionRecord
	Market       domain.MarketRecord
	Distribution domain.DistributionRecord
	Social       domain.SocialRecord
	Now          time.Time
}

// Warning texts, one per risk indicator.
const (
	WarnMintAuthority    = "Mint authority is not renounced"
	WarnFreezeAuthority  = "Freeze authority is not renounced"
	WarnTopHolder        = "Largest holder owns %s%% of supply"
	WarnConcentration    = "Top 5 holders own %s%% of supply"
	WarnLowLiquidity     = "Liquidity is below $%s"
	WarnNoLiquidity      = "No liquidity pool found"
	WarnYoungDomain      = "Website domain registered %d days ago"
	WarnNoSocials        = "No website or social profiles found"
	WarnUnknownRegistrar = "Website registration country is unknown"
)

var recommendations = map[domain.RiskLevel]string{
	domain.RiskLow:    "Low risk (score %d/100). No major red flags found; always verify independently before investing.",
	domain.RiskMedium: "Medium risk (score %d/100). Some warning signs were found; review the warnings before interacting.",
	domain.RiskHigh:   "High risk (score %d/100). Multiple red flags were found; avoid interacting unless you fully trust the project.",
}

// Score computes Scores for in.
func Score(cfg Config, in Input) domain.Scores {
	trust, warnings := Trust(cfg, in)
	activity := Activity(cfg, in.Transactions.TotalCount, in.Distribution.HolderCount)
	overall := Overall(cfg, trust, activity)
	level := Level(cfg, overall)

	return domain.Scores{
		TrustScore:     trust,
		ActivityScore:  activity,
		OverallScore:   overall,
		RiskLevel:      level,
		Recommendation: fmt.Sprintf(recommendations[level], overall),
		Warnings:       warnings,
	}
}

// Trust starts at 100 and deducts the weight of each risk indicator present.
// Only observed data raises an indicator, except missing token liquidity and
// socials.
func Trust(cfg Config, in Input) (int, []string) {
	w := cfg.Weights
	score := 100
	warnings := []string{}
	flag := func(weight int, warning string) {
		score -= weight
		warnings = append(warnings, warning)
	}

	if isAddress(in.Account.MintAuthority) {
		flag(w.MintAuthority, WarnMintAuthority)
	}
	if isAddress(in.Account.FreezeAuthority) {
		flag(w.FreezeAuthority, WarnFreezeAuthority)
	}

	if top1 := in.Distribution.Concentration["top1"]; top1.Known && top1.V > cfg.TopHolderPercent {
		flag(w.TopHolder, fmt.Sprintf(WarnTopHolder, pct(top1.V)))
	}
	if top5 := in.Distribution.Concentration["top5"]; top5.Known && top5.V > cfg.ConcentrationPercent {
		flag(w.Concentration, fmt.Sprintf(WarnConcentration, pct(top5.V)))
	}

	if in.Account.IsToken {
		liq := in.Market.LiquidityUSD
		switch {
		case !liq.Known:
			flag(w.LowLiquidity, WarnNoLiquidity)
		case liq.V < cfg.MinLiquidityUSD:
			flag(w.LowLiquidity, fmt.Sprintf(WarnLowLiquidity, pct(cfg.MinLiquidityUSD)))
		}
		if !in.Social.HasSocials() {
			flag(w.NoSocials, WarnNoSocials)
		}
	}

	site := in.Social.Website
	if days, ok := domainAgeDays(site.RegistrationDate, in.Now); ok && time.Duration(days)*24*time.Hour < cfg.MinDomainAge {
		flag(w.YoungDomain, fmt.Sprintf(WarnYoungDomain, days))
	}
	if site.Domain != domain.NotFound && site.RegistrationCountry == domain.Unknown {
		flag(w.UnknownRegistrar, WarnUnknownRegistrar)
	}

	return clamp(score), warnings
}

// Activity grows logarithmically with transaction and holder counts and
// saturates at TxPoints+HolderPoints.
func Activity(cfg Config, txCount, holders domain.Value[int64]) int {
	part := func(v domain.Value[int64], decades, points float64) float64 {
		n := v.Or(0)
		if n <= 0 || decades <= 0 {
			return 0
		}
		return points * math.Min(1, math.Log10(1+float64(n))/decades)
	}
	score := part(txCount, cfg.TxDecades, cfg.TxPoints) + part(holders, cfg.HolderDecades, cfg.HolderPoints)
	return clamp(int(math.Round(score)))
}

// Overall is the rounded weighted mean of trust and activity, so it never
// leaves [min(trust, activity), max(trust, activity)].
func Overall(cfg Config, trust, activity int) int {
	w := math.Max(0, math.Min(1, cfg.TrustWeight))
	return int(math.Round(w*float64(trust) + (1-w)*float64(activity)))
}

// Level classifies overall against the configured thresholds.
func Level(cfg Config, overall int) domain.RiskLevel {
	switch {
	case overall >= cfg.LowRiskMin:
		return domain.RiskLow
	case overall <= cfg.HighRiskMax:
		return domain.RiskHigh
	}
	return domain.RiskMedium
}

func isAddress(s string) bool {
	switch s {
	case "", domain.Unknown, domain.None, domain.NotFound:
		return false
	}
	return true
}

func domainAgeDays(date string, now time.Time) (int, bool) {
	if now.IsZero() || date == domain.Unknown {
		return 0, false
	}
	created, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return 0, false
	}
	days := int(now.Sub(created).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

func pct(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
