package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solana-address-checker/internal/cache"
	"solana-address-checker/internal/config"
	"solana-address-checker/internal/domain"
)

// KeyWindows carries the lookback windows applied to a payload.
const KeyWindows = "windows"

// APIKeyHeader carries upstream credentials.
const APIKeyHeader = "X-API-Key"

// restClient is the common part of the REST upstreams.
type restClient struct {
	gate    *Gate
	http    *http.Client
	base    string
	apiKey  string
	host    string
	timeout time.Duration
}

func newRESTClient(gate *Gate, cfg config.Upstream, client *http.Client) restClient {
	if client == nil {
		client = &http.Client{}
	}
	return restClient{
		gate:    gate,
		http:    client,
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		host:    hostOf(cfg.BaseURL),
		timeout: cfg.Timeout,
	}
}

func (c restClient) header() http.Header {
	h := http.Header{}
	if c.apiKey != "" {
		h.Set(APIKeyHeader, c.apiKey)
	}
	return h
}

func windowLabels(windows []domain.Window) []string {
	labels := make([]string, 0, len(windows))
	for _, w := range windows {
		labels = append(labels, string(w))
	}
	return labels
}

func windowParams(windows []domain.Window) map[string]string {
	return map[string]string{KeyWindows: strings.Join(windowLabels(windows), ",")}
}

// IndexerClient fetches holder statistics from the enhanced indexer.
type IndexerClient struct {
	restClient
}

// NewIndexerClient creates an IndexerClient. A nil client uses a default one.
func NewIndexerClient(gate *Gate, cfg config.Upstream, client *http.Client) *IndexerClient {
	return &IndexerClient{newRESTClient(gate, cfg, client)}
}

// Fetch retrieves holder data for a token mint. The windows select which
// holder-change periods the normalizer reports.
func (c *IndexerClient) Fetch(ctx context.Context, address string, windows []domain.Window) Response {
	return c.gate.fetch(ctx, request{
		source:  domain.SourceIndexer,
		host:    c.host,
		key:     cache.Key(string(domain.SourceIndexer), address, windowParams(windows)),
		timeout: c.timeout,
		do: func(ctx context.Context) (Payload, error) {
			endpoint := c.base + "/token/mainnet/holders/" + url.PathEscape(address)
			payload, err := getJSON(ctx, c.http, endpoint, c.header())
			if err != nil {
				return nil, err
			}
			payload[KeyWindows] = windowLabels(windows)
			return payload, nil
		},
	})
}

// MarketClient fetches DEX pair data.
type MarketClient struct {
	restClient
}

// NewMarketClient creates a MarketClient. A nil client uses a default one.
func NewMarketClient(gate *Gate, cfg config.Upstream, client *http.Client) *MarketClient {
	return &MarketClient{newRESTClient(gate, cfg, client)}
}

// Market payload keys.
const (
	KeyPair      = "pair"
	KeyPairCount = "pairCount"
)

// Fetch retrieves the pairs of a token and keeps the most liquid one.
func (c *MarketClient) Fetch(ctx context.Context, address string, windows []domain.Window) Response {
	return c.gate.fetch(ctx, request{
		source:  domain.SourceMarket,
		host:    c.host,
		key:     cache.Key(string(domain.SourceMarket), address, windowParams(windows)),
		timeout: c.timeout,
		do: func(ctx context.Context) (Payload, error) {
			endpoint := c.base + "/latest/dex/tokens/" + url.PathEscape(address)
			body, err := getJSON(ctx, c.http, endpoint, c.header())
			if err != nil {
				return nil, err
			}
			pairs := solanaPairs(List(body.Get("pairs")))
			return Payload{
				KeyPair:      mostLiquid(pairs),
				KeyPairCount: len(pairs),
				KeyWindows:   windowLabels(windows),
			}, nil
		},
	})
}

func solanaPairs(pairs []any) []any {
	out := make([]any, 0, len(pairs))
	for _, p := range pairs {
		chain, ok := String(Lookup(p, "chainId"))
		if ok && chain != "solana" {
			continue
		}
		if _, ok := asMap(p); ok {
			out = append(out, p)
		}
	}
	return out
}

// mostLiquid returns the pair with the highest USD liquidity, or nil.
func mostLiquid(pairs []any) any {
	var best any
	bestLiq := -1.0
	for _, p := range pairs {
		liq, ok := Float(Lookup(p, "liquidity", "usd"))
		if !ok {
			liq = 0
		}
		if liq > bestLiq {
			best, bestLiq = p, liq
		}
	}
	return best
}

// WhoisClient fetches domain registration data.
type WhoisClient struct {
	restClient
}

// NewWhoisClient creates a WhoisClient. A nil client uses a default one.
func NewWhoisClient(gate *Gate, cfg config.Upstream, client *http.Client) *WhoisClient {
	return &WhoisClient{newRESTClient(gate, cfg, client)}
}

// Fetch retrieves registration data for domainName. An empty domain is
// skipped without any call.
func (c *WhoisClient) Fetch(ctx context.Context, domainName string) Response {
	domainName = strings.ToLower(strings.TrimSpace(domainName))
	if domainName == "" || domainName == strings.ToLower(domain.NotFound) {
		return Skipped(domain.SourceWhois, c.gate.now(), "no website domain")
	}
	return c.gate.fetch(ctx, request{
		source:  domain.SourceWhois,
		host:    c.host,
		key:     cache.Key(string(domain.SourceWhois), domainName, nil),
		timeout: c.timeout,
		do: func(ctx context.Context) (Payload, error) {
			return getJSON(ctx, c.http, c.base+"/"+url.PathEscape(domainName), c.header())
		},
	})
}
