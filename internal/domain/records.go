package domain

// BalanceRecord holds native and token holdings of an address.
type BalanceRecord struct {
	SOLBalance    Value[float64] `json:"sol_balance"`
	SOLBalanceUSD Value[float64] `json:"sol_balance_usd"`
	TokenCount    Value[int64]   `json:"token_count"`
	NFTCount      Value[int64]   `json:"nft_count"`
}

// RecentTx is one entry of the recent transaction list.
type RecentTx struct {
	Signature string `json:"signature"`
	Slot      int64  `json:"slot"`
	BlockTime string `json:"block_time"` // RFC3339 or Unknown
	Failed    bool   `json:"failed"`
}

// TransactionRecord summarizes signature history.
type TransactionRecord struct {
	TotalCount    Value[int64] `json:"total_count"`
	FirstSeenDate string       `json:"first_seen_date"`
	LastSeenDate  string       `json:"last_seen_date"`
	FirstSeenUnix Value[int64] `json:"first_seen_unix"`
	Recent        []RecentTx   `json:"recent_list"`
}

// AccountRecord is the on-chain account view.
type AccountRecord struct {
	Owner           string         `json:"owner"`
	Executable      string         `json:"executable"` // "true", "false" or Unknown
	DataSize        Value[int64]   `json:"data_size"`
	RentEpoch       Value[int64]   `json:"rent_epoch"`
	IsToken         bool           `json:"is_token"`
	Decimals        Value[int64]   `json:"decimals"`
	Supply          Value[float64] `json:"supply"`
	MintAuthority   string         `json:"mint_authority"`
	FreezeAuthority string         `json:"freeze_authority"`
}

// WindowStats maps a window label to a numeric value.
type WindowStats map[Window]Value[float64]

// BuysSells counts trades in a window.
type BuysSells struct {
	Buys  Value[int64] `json:"buys"`
	Sells Value[int64] `json:"sells"`
}

// MarketRecord is the DEX market view of a token.
type MarketRecord struct {
	PairAddress         string               `json:"pair_address"`
	DexID               string               `json:"dex_id"`
	QuoteSymbol         string               `json:"quote_symbol"`
	PriceUSD            Value[float64]       `json:"price_usd"`
	PriceNative         Value[float64]       `json:"price_native"`
	LiquidityUSD        Value[float64]       `json:"liquidity_usd"`
	MarketCap           Value[float64]       `json:"market_cap"`
	PairCreatedAt       Value[int64]         `json:"pair_created_at"`
	VolumeByWindow      WindowStats          `json:"volume_by_window"`
	PriceChangeByWindow WindowStats          `json:"price_change_by_window"`
	BuysSellsByWindow   map[Window]BuysSells `json:"buys_sells_by_window"`
	Display             map[string]string    `json:"display"`
}

// Concentration tiers reported in DistributionRecord.
var ConcentrationTiers = []string{"top1", "top5", "top20", "top50", "top100", "top250", "top500"}

// Holder categories reported in DistributionRecord.
var HolderCategories = []string{"whale", "shark", "dolphin", "fish", "octopus", "crab", "shrimp"}

// DistributionRecord describes how a token's supply is held.
type DistributionRecord struct {
	HolderCount    Value[int64]              `json:"holder_count"`
	Concentration  map[string]Value[float64] `json:"concentration_by_tier"`
	CategoryCounts map[string]Value[int64]   `json:"category_counts"`
	HolderChange   WindowStats               `json:"holder_change_by_window"`
	Source         string                    `json:"source"`
}

// Website is the registration view of a project's domain.
type Website struct {
	URL                 string `json:"url"`
	Domain              string `json:"domain"`
	RegistrationDate    string `json:"registration_date"`
	RegistrationCountry string `json:"registration_country"`
	Registrar           string `json:"registrar"`
	RegistrarCountry    string `json:"registrar_country"`
}

// Twitter handle details.
type Twitter struct {
	Handle   string `json:"handle"`
	URL      string `json:"url"`
	Verified string `json:"verified"`
}

// Telegram channel details.
type Telegram struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// Discord invite details.
type Discord struct {
	Invite     string `json:"invite"`
	ServerName string `json:"server_name"`
	URL        string `json:"url"`
}

// GitHub profile details.
type GitHub struct {
	Profile string `json:"profile"`
	Repo    string `json:"repo"`
	Org     string `json:"org"`
}

// SocialRecord collects a project's public presence.
type SocialRecord struct {
	Website  Website  `json:"website"`
	Twitter  Twitter  `json:"twitter"`
	Telegram Telegram `json:"telegram"`
	Discord  Discord  `json:"discord"`
	GitHub   GitHub   `json:"github"`
}

// NewBalanceRecord returns a record with every field unknown.
func NewBalanceRecord() BalanceRecord {
	return BalanceRecord{}
}

// NewTransactionRecord returns a record with every field unknown.
func NewTransactionRecord() TransactionRecord {
	return TransactionRecord{
		FirstSeenDate: Unknown,
		LastSeenDate:  Unknown,
		Recent:        []RecentTx{},
	}
}

// NewAccountRecord returns a record with every field unknown.
func NewAccountRecord() AccountRecord {
	return AccountRecord{
		Owner:           Unknown,
		Executable:      Unknown,
		MintAuthority:   Unknown,
		FreezeAuthority: Unknown,
	}
}

// DisplayFields are the formatted market figures, Unknown until observed.
var DisplayFields = []string{"liquidity_usd", "market_cap", "volume_24h"}

// NewMarketRecord returns a record with every field unknown and one
// sentinel entry per window.
func NewMarketRecord(windows ...Window) MarketRecord {
	m := MarketRecord{
		PairAddress:         NotFound,
		DexID:               Unknown,
		QuoteSymbol:         Unknown,
		VolumeByWindow:      make(WindowStats, len(windows)),
		PriceChangeByWindow: make(WindowStats, len(windows)),
		BuysSellsByWindow:   make(map[Window]BuysSells, len(windows)),
		Display:             make(map[string]string, len(DisplayFields)),
	}
	for _, w := range windows {
		m.VolumeByWindow[w] = Value[float64]{}
		m.PriceChangeByWindow[w] = Value[float64]{}
		m.BuysSellsByWindow[w] = BuysSells{}
	}
	for _, name := range DisplayFields {
		m.Display[name] = Unknown
	}
	return m
}

// NewDistributionRecord returns a record with every field unknown and one
// sentinel holder change per window.
func NewDistributionRecord(windows ...Window) DistributionRecord {
	d := DistributionRecord{
		Concentration:  make(map[string]Value[float64], len(ConcentrationTiers)),
		CategoryCounts: make(map[string]Value[int64], len(HolderCategories)),
		HolderChange:   make(WindowStats, len(windows)),
		Source:         Unknown,
	}
	for _, w := range windows {
		d.HolderChange[w] = Value[float64]{}
	}
	for _, tier := range ConcentrationTiers {
		d.Concentration[tier] = Value[float64]{}
	}
	for _, c := range HolderCategories {
		d.CategoryCounts[c] = Value[int64]{}
	}
	return d
}

// NewSocialRecord returns a record with every field set to a sentinel.
func NewSocialRecord() SocialRecord {
	return SocialRecord{
		Website: Website{
			URL:                 NotFound,
			Domain:              NotFound,
			RegistrationDate:    Unknown,
			RegistrationCountry: Unknown,
			Registrar:           Unknown,
			RegistrarCountry:    Unknown,
		},
		Twitter:  Twitter{Handle: NotFound, URL: NotFound, Verified: Unknown},
		Telegram: Telegram{Channel: NotFound, URL: NotFound},
		Discord:  Discord{Invite: NotFound, ServerName: NotFound, URL: NotFound},
		GitHub:   GitHub{Profile: NotFound, Repo: NotFound, Org: NotFound},
	}
}

// HasSocials reports whether any social handle was found.
func (s SocialRecord) HasSocials() bool {
	return s.Website.URL != NotFound ||
		s.Twitter.Handle != NotFound ||
		s.Telegram.Channel != NotFound ||
		s.Discord.Invite != NotFound ||
		s.GitHub.Profile != NotFound ||
		s.GitHub.Repo != NotFound
}
