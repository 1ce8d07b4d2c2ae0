package solana

import (
	"context"
	"encoding/json"
)

// Program IDs the checker inspects.
const (
	TokenProgramID     = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	Token2022ProgramID = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	WSOLMint           = "So11111111111111111111111111111111111111112"
)

// TokenAccountSize is the byte length of an SPL token account.
const TokenAccountSize = 165

// LamportsPerSOL is the fixed lamports-to-SOL divisor.
const LamportsPerSOL = 1_000_000_000

// RPCClient defines the Solana RPC HTTP interface used by the checker.
// Results are returned as raw JSON "result" members.
type RPCClient interface {
	// GetAccountInfo retrieves jsonParsed account info.
	GetAccountInfo(ctx context.Context, pubkey string) (json.RawMessage, error)

	// GetBalance retrieves the lamport balance.
	GetBalance(ctx context.Context, pubkey string) (json.RawMessage, error)

	// GetSignaturesForAddress retrieves signatures for an address with pagination.
	GetSignaturesForAddress(ctx context.Context, address string, opts *SignaturesOpts) (json.RawMessage, error)

	// GetTokenAccountsByOwner retrieves jsonParsed SPL token accounts of owner.
	GetTokenAccountsByOwner(ctx context.Context, owner, programID string) (json.RawMessage, error)

	// GetProgramAccounts retrieves accounts owned by programID matching filters.
	GetProgramAccounts(ctx context.Context, programID string, opts *ProgramAccountsOpts) (json.RawMessage, error)
}

// SignaturesOpts defines optional pagination parameters for getSignaturesForAddress.
type SignaturesOpts struct {
	Before string // Start searching backwards from this signature
	Until  string // Search until this signature
	Limit  int    // Maximum number of signatures to return
}

// MemcmpFilter matches account data bytes at Offset.
type MemcmpFilter struct {
	Offset int    `json:"offset"`
	Bytes  string `json:"bytes"` // base58
}

// Token account layout: mint (32), owner (32), amount (u64 little endian).
const (
	TokenAmountOffset = 64
	TokenAmountSize   = 8
)

// DataSlice limits the returned account data to Length bytes at Offset.
type DataSlice struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// ProgramAccountsOpts narrows getProgramAccounts.
type ProgramAccountsOpts struct {
	DataSize  int           // 0 means no size filter
	Memcmp    *MemcmpFilter // nil means no memcmp filter
	DataSlice *DataSlice    // nil returns full account data
}
