package normalization

import (
	"strings"

	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/solana"
	"solana-address-checker/internal/upstream"
)

// marketKeys maps windows to the market service's field suffixes.
var marketKeys = map[domain.Window]string{
	domain.Window5m:  "m5",
	domain.Window1h:  "h1",
	domain.Window6h:  "h6",
	domain.Window24h: "h24",
}

// Market builds the DEX view from the most liquid pair. Every market window
// among windows is present in the record, Unknown when not reported.
func Market(resp upstream.Response, windows []domain.Window) domain.MarketRecord {
	if len(windows) == 0 && resp.OK {
		windows = windowsOf(resp.Payload)
	}
	ws := marketWindows(windows)
	rec := domain.NewMarketRecord(ws...)
	if !resp.OK {
		return rec
	}
	pair := resp.Payload.Get(upstream.KeyPair)
	if pair == nil {
		return rec
	}

	if s, ok := upstream.String(upstream.Lookup(pair, "pairAddress")); ok {
		rec.PairAddress = s
	}
	if s, ok := upstream.String(upstream.Lookup(pair, "dexId")); ok {
		rec.DexID = s
	}
	if s, ok := upstream.String(upstream.Lookup(pair, "quoteToken", "symbol")); ok {
		rec.QuoteSymbol = s
	}
	rec.PriceUSD = floatAt(pair, "priceUsd")
	rec.PriceNative = floatAt(pair, "priceNative")
	rec.LiquidityUSD = floatAt(pair, "liquidity", "usd")
	rec.MarketCap = floatAt(pair, "marketCap")
	if !rec.MarketCap.Known {
		rec.MarketCap = floatAt(pair, "fdv")
	}
	if ts, ok := upstream.Int(upstream.Lookup(pair, "pairCreatedAt")); ok {
		rec.PairCreatedAt = domain.Known(ts)
	}

	for _, w := range ws {
		key := marketKeys[w]
		rec.VolumeByWindow[w] = floatAt(pair, "volume", key)
		rec.PriceChangeByWindow[w] = floatAt(pair, "priceChange", key)
		bs := domain.BuysSells{}
		if n, ok := upstream.Int(upstream.Lookup(pair, "txns", key, "buys")); ok {
			bs.Buys = domain.Known(n)
		}
		if n, ok := upstream.Int(upstream.Lookup(pair, "txns", key, "sells")); ok {
			bs.Sells = domain.Known(n)
		}
		rec.BuysSellsByWindow[w] = bs
	}

	display := func(name string, v domain.Value[float64]) {
		if v.Known {
			rec.Display[name] = FormatNumber(v.V)
		}
	}
	display("liquidity_usd", rec.LiquidityUSD)
	display("market_cap", rec.MarketCap)
	display("volume_24h", floatAt(pair, "volume", "h24"))
	return rec
}

// marketWindows returns the requested windows the market service reports,
// or all of them when none were requested.
func marketWindows(windows []domain.Window) []domain.Window {
	var out []domain.Window
	for _, w := range windows {
		if _, ok := marketKeys[w]; ok {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return domain.MarketWindows
	}
	return out
}

func windowsOf(p upstream.Payload) []domain.Window {
	var out []domain.Window
	for _, v := range upstream.List(p.Get(upstream.KeyWindows)) {
		if s, ok := upstream.String(v); ok && domain.Window(s).IsValid() {
			out = append(out, domain.Window(s))
		}
	}
	return out
}

func floatAt(v any, keys ...string) domain.Value[float64] {
	if f, ok := upstream.Float(upstream.Lookup(v, keys...)); ok {
		return domain.Known(f)
	}
	return domain.Value[float64]{}
}

// SOLRate derives the SOL/USD rate from a market response: directly for a
// wSOL base token, or as priceUsd/priceNative for a SOL-quoted pair.
func SOLRate(resp upstream.Response) domain.Value[float64] {
	if !resp.OK {
		return domain.Value[float64]{}
	}
	pair := resp.Payload.Get(upstream.KeyPair)
	if pair == nil {
		return domain.Value[float64]{}
	}
	usd := floatAt(pair, "priceUsd")
	if !usd.Known {
		return usd
	}

	if base, _ := upstream.String(upstream.Lookup(pair, "baseToken", "address")); base == solana.WSOLMint {
		return usd
	}
	quote, _ := upstream.String(upstream.Lookup(pair, "quoteToken", "address"))
	symbol, _ := upstream.String(upstream.Lookup(pair, "quoteToken", "symbol"))
	if quote != solana.WSOLMint && !strings.EqualFold(symbol, "SOL") && !strings.EqualFold(symbol, "WSOL") {
		return domain.Value[float64]{}
	}
	native := floatAt(pair, "priceNative")
	if !native.Known || native.V <= 0 {
		return domain.Value[float64]{}
	}
	return domain.Known(roundTo(usd.V/native.V, 4))
}
