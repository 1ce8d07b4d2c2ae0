package normalization

import (
	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/upstream"
)

// Distribution source labels.
const (
	SourceIndexer = "indexer"
	SourceRPC     = "rpc"
)

// categoryKeys maps holder categories to the indexer's field names.
var categoryKeys = map[string]string{
	"whale":   "whales",
	"shark":   "sharks",
	"dolphin": "dolphins",
	"fish":    "fish",
	"octopus": "octopus",
	"crab":    "crabs",
	"shrimp":  "shrimps",
}

// holderChangeKey maps a window to the indexer's holderChange key.
func holderChangeKey(w domain.Window) string {
	if w == domain.Window5m {
		return "5min"
	}
	return string(w)
}

// Distribution builds the holder view from the indexer, falling back to the
// RPC holder count when the indexer has none. Holder change carries one entry
// per window.
func Distribution(indexer, rpc upstream.Response, windows []domain.Window) domain.DistributionRecord {
	if len(windows) == 0 && indexer.OK {
		windows = windowsOf(indexer.Payload)
	}
	rec := domain.NewDistributionRecord(windows...)

	if indexer.OK {
		p := indexer.Payload
		if n, ok := upstream.Int(p.Get("totalHolders")); ok {
			rec.HolderCount = domain.Known(n)
			rec.Source = SourceIndexer
		}
		for _, tier := range domain.ConcentrationTiers {
			rec.Concentration[tier] = floatAt(p.Get("holderSupply"), tier, "supplyPercent")
		}
		for _, c := range domain.HolderCategories {
			if n, ok := upstream.Int(p.Get("holderDistribution", categoryKeys[c])); ok {
				rec.CategoryCounts[c] = domain.Known(n)
			}
		}
		for _, w := range windows {
			rec.HolderChange[w] = floatAt(p.Get("holderChange"), holderChangeKey(w), "change")
		}
	}

	if !rec.HolderCount.Known {
		if n := HolderCountFromRPC(rpc); n.Known {
			rec.HolderCount = n
			rec.Source = SourceRPC
		}
	}
	return rec
}
