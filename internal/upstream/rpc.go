package upstream

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"solana-address-checker/internal/cache"
	"solana-address-checker/internal/config"
	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/solana"
)

// SignatureLimit caps getSignaturesForAddress.
const SignatureLimit = 1000

// Payload keys produced by RPCClient.
const (
	KeyAccountInfo     = "accountInfo"
	KeyBalance         = "balance"
	KeySignatures      = "signatures"
	KeyTokenAccounts   = "tokenAccounts"
	KeyProgramAccounts = "programAccounts"
)

// RPCClient fetches on-chain data for an address from a Solana RPC node.
// Only getAccountInfo failing fails the response; follow-up calls that fail
// or are rate limited are left out of the payload and listed in
// Response.Missing, and such a payload is not cached.
type RPCClient struct {
	gate    *Gate
	rpc     solana.RPCClient
	host    string
	timeout time.Duration
}

// NewRPCClient creates an RPCClient over rpc.
func NewRPCClient(gate *Gate, rpc solana.RPCClient, cfg config.Upstream) *RPCClient {
	return &RPCClient{
		gate:    gate,
		rpc:     rpc,
		host:    hostOf(cfg.BaseURL),
		timeout: cfg.Timeout,
	}
}

// Fetch collects account, balance, signature and holding data for address.
func (c *RPCClient) Fetch(ctx context.Context, address string) Response {
	return c.gate.fetch(ctx, request{
		source:  domain.SourceRPC,
		host:    c.host,
		key:     cache.Key(string(domain.SourceRPC), address, nil),
		timeout: c.timeout,
		do: func(ctx context.Context) (Payload, error) {
			return c.collect(ctx, address)
		},
	})
}

func (c *RPCClient) collect(ctx context.Context, address string) (Payload, error) {
	info, err := c.rpc.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("getAccountInfo: %w", err)
	}
	payload := Payload{KeyAccountInfo: info}
	var missing []string
	optional := func(key string, call func() (json.RawMessage, error)) {
		if !c.optional(ctx, payload, key, call) {
			missing = append(missing, key)
		}
	}

	optional(KeyBalance, func() (json.RawMessage, error) {
		return c.rpc.GetBalance(ctx, address)
	})
	optional(KeySignatures, func() (json.RawMessage, error) {
		return c.rpc.GetSignaturesForAddress(ctx, address, &solana.SignaturesOpts{Limit: SignatureLimit})
	})

	if owner, isMint := mintOwner(info); isMint {
		optional(KeyProgramAccounts, func() (json.RawMessage, error) {
			return c.holderCount(ctx, address, owner)
		})
	} else {
		optional(KeyTokenAccounts, func() (json.RawMessage, error) {
			return c.tokenAccounts(ctx, address)
		})
	}

	if len(missing) > 0 {
		return payload, &PartialError{Missing: missing}
	}
	return payload, nil
}

// optional runs one follow-up call and stores its result under key. It
// reports whether the result was stored.
func (c *RPCClient) optional(ctx context.Context, payload Payload, key string, call func() (json.RawMessage, error)) bool {
	if !c.gate.Allow(ctx, c.host) {
		c.gate.logger.WithField("call", key).Debug("rpc follow-up call rate limited")
		return false
	}
	raw, err := call()
	if err != nil {
		c.gate.logger.WithFields(logrus.Fields{"call": key, "error": err}).Debug("rpc follow-up call failed")
		return false
	}
	payload[key] = raw
	return true
}

// tokenAccounts merges holdings under both token programs.
func (c *RPCClient) tokenAccounts(ctx context.Context, owner string) (json.RawMessage, error) {
	var merged []json.RawMessage
	for _, program := range []string{solana.TokenProgramID, solana.Token2022ProgramID} {
		raw, err := c.rpc.GetTokenAccountsByOwner(ctx, owner, program)
		if err != nil {
			return nil, err
		}
		var res struct {
			Value []json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		merged = append(merged, res.Value...)
	}
	if merged == nil {
		merged = []json.RawMessage{}
	}
	return json.Marshal(merged)
}

// holderCount counts token accounts of mint holding a non-zero balance and
// returns {"count": n}. Only the amount bytes of each account are fetched.
func (c *RPCClient) holderCount(ctx context.Context, mint, program string) (json.RawMessage, error) {
	opts := &solana.ProgramAccountsOpts{
		Memcmp:    &solana.MemcmpFilter{Offset: 0, Bytes: mint},
		DataSlice: &solana.DataSlice{Offset: solana.TokenAmountOffset, Length: solana.TokenAmountSize},
	}
	// Token-2022 accounts carry extensions and vary in size.
	if program == solana.TokenProgramID {
		opts.DataSize = solana.TokenAccountSize
	}
	raw, err := c.rpc.GetProgramAccounts(ctx, program, opts)
	if err != nil {
		return nil, err
	}
	var accounts []struct {
		Account struct {
			Data []string `json:"data"` // [base64, "base64"]
		} `json:"account"`
	}
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	count := 0
	for _, a := range accounts {
		if len(a.Account.Data) == 0 {
			continue
		}
		amount, err := base64.StdEncoding.DecodeString(a.Account.Data[0])
		if err != nil {
			return nil, fmt.Errorf("%w: account data: %v", ErrInvalidJSON, err)
		}
		if !allZero(amount) {
			count++
		}
	}
	return json.Marshal(map[string]int{"count": count})
}

func allZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// mintOwner reports the owning token program when info describes a mint.
func mintOwner(info json.RawMessage) (string, bool) {
	var res struct {
		Value *struct {
			Owner string `json:"owner"`
			Data  struct {
				Parsed struct {
					Type string `json:"type"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"value"`
	}
	if err := json.Unmarshal(info, &res); err != nil || res.Value == nil {
		return "", false
	}
	if res.Value.Data.Parsed.Type != "mint" {
		return "", false
	}
	switch res.Value.Owner {
	case solana.TokenProgramID, solana.Token2022ProgramID:
		return res.Value.Owner, true
	}
	return "", false
}
