package orchestrator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-address-checker/internal/cache"
	"solana-address-checker/internal/config"
	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/logging"
	"solana-address-checker/internal/ratelimit"
	"solana-address-checker/internal/solana"
	"solana-address-checker/internal/storage/memory"
	"solana-address-checker/internal/upstream"
)

var rpcResults = map[string]string{
	"getAccountInfo": `{"context":{"slot":1},"value":{"owner":"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA","executable":false,"rentEpoch":361,"space":82,
	  "data":{"program":"spl-token","parsed":{"type":"mint","info":{"decimals":6,"supply":"5000000000000","mintAuthority":null,"freezeAuthority":null}}}}}`,
	"getBalance":              `{"context":{"slot":1},"value":1461600}`,
	"getSignaturesForAddress": `[{"signature":"s2","slot":20,"blockTime":1700000000,"err":null},{"signature":"s1","slot":10,"blockTime":1678838400,"err":null}]`,
	"getProgramAccounts":      `[{"pubkey":"a","account":{"data":["ECcAAAAAAAA=","base64"]}},{"pubkey":"b","account":{"data":["AAAAAAAAAAA=","base64"]}}]`,
}

const dexResponse = `{"schemaVersion":"1.0.0","pairs":[{
  "chainId":"solana","dexId":"raydium","pairAddress":"PAIR1",
  "baseToken":{"address":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","symbol":"USDC"},
  "quoteToken":{"address":"So11111111111111111111111111111111111111112","symbol":"SOL"},
  "priceNative":"0.0066","priceUsd":"0.99",
  "volume":{"h24":2500000},"liquidity":{"usd":1500000},"marketCap":5000000000,
  "info":{"websites":[{"label":"Website","url":"https://example-token.io"}],
          "socials":[{"type":"twitter","url":"https://x.com/exampletoken"}]}}]}`

const holdersResponse = `{"totalHolders":250000,
  "holderSupply":{"top1":{"supplyPercent":8},"top5":{"supplyPercent":30}},
  "holderDistribution":{"whales":12},
  "holderChange":{"24h":{"change":150}}}`

const whoisResponse = `{"domain":{"created_date":"2023-03-15T00:00:00Z"},
  "administrative":{"country":"US"},
  "registrar":{"name":"NameCheap, Inc."}}`

type upstreamServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newUpstreamServer(t *testing.T) *upstreamServer {
	t.Helper()
	s := &upstreamServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("/rpc", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		result, ok := rpcResults[req.Method]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":` + jsonID(req.ID) + `,"result":` + result + `}`))
	})
	mux.HandleFunc("/token/mainnet/holders/", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		if r.Header.Get(upstream.APIKeyHeader) != "indexer-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(holdersResponse))
	})
	mux.HandleFunc("/dex/latest/dex/tokens/", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.Write([]byte(dexResponse))
	})
	mux.HandleFunc("/whois/", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		if strings.TrimPrefix(r.URL.Path, "/whois/") != "example-token.io" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(whoisResponse))
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func jsonID(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

// newLiveOrchestrator wires real clients, cache and limiter against srv.
func newLiveOrchestrator(srv *upstreamServer) *Orchestrator {
	cfg := config.Default()
	cfg.Upstreams.RPC = config.Upstream{BaseURL: srv.URL + "/rpc", Timeout: 5 * time.Second}
	cfg.Upstreams.Indexer = config.Upstream{BaseURL: srv.URL, APIKey: "indexer-key", Timeout: 5 * time.Second}
	cfg.Upstreams.Market = config.Upstream{BaseURL: srv.URL + "/dex", Timeout: 5 * time.Second}
	cfg.Upstreams.Whois = config.Upstream{BaseURL: srv.URL + "/whois", APIKey: "whois-key", Timeout: 5 * time.Second}

	logger := logging.Discard()
	responses := cache.New(cfg.Cache, memory.NewCacheStore(), logger, cache.WithClock(fixedNow))
	limiter := ratelimit.New(cfg.RateLimit, memory.NewRateCounterStore(), logger, ratelimit.WithClock(fixedNow))
	gate := upstream.NewGate(responses, limiter, logger, upstream.WithGateClock(fixedNow))

	rpc := solana.NewHTTPClient(cfg.Upstreams.RPC.BaseURL, solana.WithMaxRetries(0))
	return New(Options{
		Config:  cfg,
		RPC:     upstream.NewRPCClient(gate, rpc, cfg.Upstreams.RPC),
		Indexer: upstream.NewIndexerClient(gate, cfg.Upstreams.Indexer, nil),
		Market:  upstream.NewMarketClient(gate, cfg.Upstreams.Market, nil),
		Whois:   upstream.NewWhoisClient(gate, cfg.Upstreams.Whois, nil),
		Logger:  logger,
		Now:     fixedNow,
	})
}

func TestCheck_EndToEnd(t *testing.T) {
	srv := newUpstreamServer(t)
	o := newLiveOrchestrator(srv)

	result, err := o.Check(context.Background(), usdcMint)
	require.NoError(t, err)
	require.Equal(t, domain.StateSuccess, result.State)

	assert.Equal(t, domain.KindTokenMint, result.Address.Kind)
	for _, src := range []domain.Source{domain.SourceRPC, domain.SourceIndexer, domain.SourceMarket, domain.SourceWhois} {
		assert.True(t, result.Sources[src].OK, "source %s: %s", src, result.Sources[src].Error)
	}

	site := result.Social.Website
	assert.Equal(t, "example-token.io", site.Domain)
	assert.Equal(t, "2023-03-15", site.RegistrationDate)
	assert.Equal(t, "US", site.RegistrationCountry)
	assert.Equal(t, "United States", site.RegistrarCountry)
	assert.Equal(t, "@exampletoken", result.Social.Twitter.Handle)

	assert.True(t, result.Account.IsToken)
	assert.Equal(t, domain.None, result.Account.MintAuthority)
	assert.Equal(t, domain.Known(5000000.0), result.Account.Supply)
	assert.Equal(t, domain.Known(int64(250000)), result.Distribution.HolderCount)
	assert.Equal(t, "indexer", result.Distribution.Source)
	assert.Equal(t, domain.Known(1500000.0), result.Market.LiquidityUSD)
	assert.Equal(t, domain.Known(int64(2)), result.Transactions.TotalCount)
	assert.Equal(t, "2023-03-15", result.Transactions.FirstSeenDate)
	// 0.0014616 SOL at 0.99/0.0066 = 150 USD per SOL.
	assert.Equal(t, domain.Known(0.22), result.Balance.SOLBalanceUSD)

	// First activity is over a year old.
	assert.Equal(t, []domain.Window{"24h", "3d", "7d", "30d"}, result.Windows)
	assert.Equal(t, domain.Known(150.0), result.Distribution.HolderChange[domain.Window24h])

	require.NotNil(t, result.Scores)
	assert.Equal(t, 100, result.Scores.TrustScore)
	assert.Equal(t, domain.RiskLow, result.Scores.RiskLevel)
	assert.GreaterOrEqual(t, result.Scores.OverallScore, min(result.Scores.TrustScore, result.Scores.ActivityScore))
	assert.LessOrEqual(t, result.Scores.OverallScore, max(result.Scores.TrustScore, result.Scores.ActivityScore))
}

func TestCheck_IdempotentWithCache(t *testing.T) {
	srv := newUpstreamServer(t)
	o := newLiveOrchestrator(srv)
	ctx := context.Background()

	first, err := o.Check(ctx, usdcMint)
	require.NoError(t, err)
	hits := srv.hits.Load()

	second, err := o.Check(ctx, usdcMint)
	require.NoError(t, err)

	assert.Equal(t, hits, srv.hits.Load(), "second check must be served from cache")
	for src, status := range second.Sources {
		assert.True(t, status.Cached, "source %s not cached", src)
	}

	first.Sources, second.Sources = nil, nil
	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}
