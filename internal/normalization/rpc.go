package normalization

import (
	"strconv"
	"time"

	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/upstream"
)

// RecentLimit caps TransactionRecord.Recent.
const RecentLimit = 10

// SystemProgramID owns plain wallet accounts.
const SystemProgramID = "11111111111111111111111111111111"

// Balance builds the holdings view from the RPC response. solUSD is the
// SOL/USD rate when one is known.
func Balance(rpc upstream.Response, solUSD domain.Value[float64]) domain.BalanceRecord {
	rec := domain.NewBalanceRecord()
	if !rpc.OK {
		return rec
	}

	if lamports, ok := upstream.Int(rpc.Payload.Get(upstream.KeyBalance, "value")); ok && lamports >= 0 {
		sol := LamportsToSOL(lamports)
		rec.SOLBalance = domain.Known(sol)
		if solUSD.Known {
			rec.SOLBalanceUSD = domain.Known(roundTo(sol*solUSD.V, 2))
		}
	}

	accounts := rpc.Payload.Get(upstream.KeyTokenAccounts)
	if accounts == nil {
		return rec
	}
	var tokens, nfts int64
	for _, a := range upstream.List(accounts) {
		amount := upstream.Lookup(a, "account", "data", "parsed", "info", "tokenAmount")
		raw, _ := upstream.String(upstream.Lookup(amount, "amount"))
		if raw == "" || raw == "0" {
			continue
		}
		decimals, ok := upstream.Int(upstream.Lookup(amount, "decimals"))
		if ok && decimals == 0 && raw == "1" {
			nfts++
			continue
		}
		tokens++
	}
	rec.TokenCount = domain.Known(tokens)
	rec.NFTCount = domain.Known(nfts)
	return rec
}

// Transactions summarizes the signature history, newest first.
func Transactions(rpc upstream.Response) domain.TransactionRecord {
	rec := domain.NewTransactionRecord()
	if !rpc.OK {
		return rec
	}
	raw := rpc.Payload.Get(upstream.KeySignatures)
	if raw == nil {
		return rec
	}
	sigs := upstream.List(raw)
	rec.TotalCount = domain.Known(int64(len(sigs)))
	if len(sigs) == 0 {
		return rec
	}

	if last, ok := upstream.Int(upstream.Lookup(sigs[0], "blockTime")); ok {
		rec.LastSeenDate = dateOf(last)
	}
	if first, ok := upstream.Int(upstream.Lookup(sigs[len(sigs)-1], "blockTime")); ok {
		rec.FirstSeenDate = dateOf(first)
		rec.FirstSeenUnix = domain.Known(first)
	}

	for _, s := range sigs {
		if len(rec.Recent) == RecentLimit {
			break
		}
		sig, ok := upstream.String(upstream.Lookup(s, "signature"))
		if !ok {
			continue
		}
		tx := domain.RecentTx{Signature: sig, BlockTime: domain.Unknown}
		if slot, ok := upstream.Int(upstream.Lookup(s, "slot")); ok {
			tx.Slot = slot
		}
		if bt, ok := upstream.Int(upstream.Lookup(s, "blockTime")); ok {
			tx.BlockTime = time.Unix(bt, 0).UTC().Format(time.RFC3339)
		}
		tx.Failed = upstream.Lookup(s, "err") != nil
		rec.Recent = append(rec.Recent, tx)
	}
	return rec
}

// Account builds the on-chain account view. A missing account has owner
// "Not found".
func Account(rpc upstream.Response) domain.AccountRecord {
	rec := domain.NewAccountRecord()
	if !rpc.OK {
		return rec
	}
	value := rpc.Payload.Get(upstream.KeyAccountInfo, "value")
	if value == nil {
		rec.Owner = domain.NotFound
		return rec
	}

	if owner, ok := upstream.String(upstream.Lookup(value, "owner")); ok {
		rec.Owner = owner
	}
	if exec, ok := upstream.Bool(upstream.Lookup(value, "executable")); ok {
		rec.Executable = strconv.FormatBool(exec)
	}
	if size, ok := upstream.Int(upstream.Lookup(value, "space")); ok {
		rec.DataSize = domain.Known(size)
	}
	if epoch, ok := upstream.Int(upstream.Lookup(value, "rentEpoch")); ok {
		rec.RentEpoch = domain.Known(epoch)
	}

	parsed := upstream.Lookup(value, "data", "parsed")
	if kind, _ := upstream.String(upstream.Lookup(parsed, "type")); kind != "mint" {
		return rec
	}
	rec.IsToken = true
	info := upstream.Lookup(parsed, "info")
	decimals, ok := upstream.Int(upstream.Lookup(info, "decimals"))
	if ok {
		rec.Decimals = domain.Known(decimals)
		if raw, ok := upstream.String(upstream.Lookup(info, "supply")); ok {
			if supply, ok := ScaleAmount(raw, decimals); ok {
				rec.Supply = domain.Known(supply)
			}
		}
	}
	rec.MintAuthority = authority(info, "mintAuthority")
	rec.FreezeAuthority = authority(info, "freezeAuthority")
	return rec
}

// authority reads an optional authority: an address, None when renounced.
func authority(info any, key string) string {
	m, ok := info.(map[string]any)
	if !ok {
		return domain.Unknown
	}
	v, present := m[key]
	if !present {
		return domain.Unknown
	}
	if v == nil {
		return domain.None
	}
	if s, ok := upstream.String(v); ok {
		return s
	}
	return domain.Unknown
}

// Kind disambiguates an address from its account record.
func Kind(acct domain.AccountRecord) domain.AddressKind {
	switch {
	case acct.IsToken:
		return domain.KindTokenMint
	case acct.Owner == SystemProgramID:
		return domain.KindWallet
	}
	return domain.KindUnknown
}

// HolderCountFromRPC returns the holder count gathered for a mint.
func HolderCountFromRPC(rpc upstream.Response) domain.Value[int64] {
	if !rpc.OK {
		return domain.Value[int64]{}
	}
	if n, ok := upstream.Int(rpc.Payload.Get(upstream.KeyProgramAccounts, "count")); ok {
		return domain.Known(n)
	}
	return domain.Value[int64]{}
}
