package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"solana-address-checker/internal/cache"
	"solana-address-checker/internal/config"
	"solana-address-checker/internal/logging"
	"solana-address-checker/internal/ratelimit"
	"solana-address-checker/internal/solana"
	"solana-address-checker/internal/storage/memory"
)

var testNow = time.Unix(1700000000, 0)

func fixedNow() time.Time { return testNow }

// newTestGate builds a gate over in-memory stores.
func newTestGate(cacheEnabled bool, maxPerWindow int) *Gate {
	logger := logging.Discard()
	c := cache.New(config.Cache{Enabled: cacheEnabled, TTLSeconds: 300}, memory.NewCacheStore(), logger, cache.WithClock(fixedNow))
	l := ratelimit.New(config.RateLimit{Enabled: true, RequestsPerWindow: maxPerWindow}, memory.NewRateCounterStore(), logger, ratelimit.WithClock(fixedNow))
	return NewGate(c, l, logger, WithGateClock(fixedNow))
}

// fakeRPC is a scripted solana.RPCClient.
type fakeRPC struct {
	accountInfo string
	accountErr  error
	balanceErr  error
	holders     int // accounts with a non-zero amount
	emptyAccts  int // accounts with a zero amount
	programOpts *solana.ProgramAccountsOpts
	calls       atomic.Int32
}

var _ solana.RPCClient = (*fakeRPC)(nil)

func (f *fakeRPC) GetAccountInfo(ctx context.Context, pubkey string) (json.RawMessage, error) {
	f.calls.Add(1)
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return json.RawMessage(f.accountInfo), nil
}

func (f *fakeRPC) GetBalance(ctx context.Context, pubkey string) (json.RawMessage, error) {
	f.calls.Add(1)
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return json.RawMessage(`{"context":{"slot":1},"value":2500000000}`), nil
}

func (f *fakeRPC) GetSignaturesForAddress(ctx context.Context, address string, opts *solana.SignaturesOpts) (json.RawMessage, error) {
	f.calls.Add(1)
	if opts == nil || opts.Limit != SignatureLimit {
		return nil, errors.New("unexpected signature limit")
	}
	return json.RawMessage(`[{"signature":"s2","slot":20,"blockTime":1700000000,"err":null},{"signature":"s1","slot":10,"blockTime":1690000000,"err":null}]`), nil
}

func (f *fakeRPC) GetTokenAccountsByOwner(ctx context.Context, owner, programID string) (json.RawMessage, error) {
	f.calls.Add(1)
	if programID == solana.Token2022ProgramID {
		return json.RawMessage(`{"value":[]}`), nil
	}
	return json.RawMessage(`{"value":[{"pubkey":"a1","account":{"data":{"parsed":{"info":{"mint":"m1","tokenAmount":{"amount":"5","decimals":6}}}}}}]}`), nil
}

func (f *fakeRPC) GetProgramAccounts(ctx context.Context, programID string, opts *solana.ProgramAccountsOpts) (json.RawMessage, error) {
	f.calls.Add(1)
	f.programOpts = opts
	type account struct {
		Data []string `json:"data"`
	}
	var accounts []map[string]any
	for i := 0; i < f.holders+f.emptyAccts; i++ {
		amount := "AAAAAAAAAAA=" // zero u64
		if i < f.holders {
			amount = "ECcAAAAAAAA=" // 10000
		}
		accounts = append(accounts, map[string]any{
			"pubkey":  "p",
			"account": account{Data: []string{amount, "base64"}},
		})
	}
	if accounts == nil {
		accounts = []map[string]any{}
	}
	return json.Marshal(accounts)
}

const walletInfo = `{"context":{"slot":1},"value":{"owner":"11111111111111111111111111111111","executable":false,"lamports":2500000000,"rentEpoch":18446744073709551615,"space":0,"data":["","base64"]}}`

const mintInfo = `{"context":{"slot":1},"value":{"owner":"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA","executable":false,"lamports":1461600,"rentEpoch":361,"space":82,"data":{"program":"spl-token","parsed":{"type":"mint","info":{"decimals":6,"supply":"1000000000000","mintAuthority":null,"freezeAuthority":null,"isInitialized":true}}}}}`
