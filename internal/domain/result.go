package domain

// State is an orchestration state.
type State string

const (
	StateReceived    State = "received"
	StateValidating  State = "validating"
	StateInvalid     State = "invalid"
	StateFetching    State = "fetching"
	StateNormalizing State = "normalizing"
	StateScoring     State = "scoring"
	StateSuccess     State = "success"
	StateFatal       State = "fatal"
)

// Source identifies an upstream data source.
type Source string

const (
	SourceRPC     Source = "rpc"
	SourceIndexer Source = "indexer"
	SourceMarket  Source = "market"
	SourceWhois   Source = "whois"
)

// String returns the string representation of Source.
func (s Source) String() string {
	return string(s)
}

// SourceStatus reports how one upstream contributed to a result.
type SourceStatus struct {
	OK      bool     `json:"ok"`
	Cached  bool     `json:"cached"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// RiskLevel classifies the overall score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Scores are derived from the normalized records on every request.
type Scores struct {
	TrustScore     int       `json:"trust_score"`
	ActivityScore  int       `json:"activity_score"`
	OverallScore   int       `json:"overall_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
	Warnings       []string  `json:"warnings"`
}

// CompositeResult is the single object returned for an address check.
// Records are nil only when validation failed.
type CompositeResult struct {
	Address      Address                 `json:"address"`
	State        State                   `json:"state"`
	Balance      *BalanceRecord          `json:"balance,omitempty"`
	Transactions *TransactionRecord      `json:"transactions,omitempty"`
	Account      *AccountRecord          `json:"account,omitempty"`
	Market       *MarketRecord           `json:"market,omitempty"`
	Distribution *DistributionRecord     `json:"distribution,omitempty"`
	Social       *SocialRecord           `json:"social,omitempty"`
	Scores       *Scores                 `json:"scores,omitempty"`
	Sources      map[Source]SourceStatus `json:"sources,omitempty"`
	Windows      []Window                `json:"windows,omitempty"`
	CheckedAt    int64                   `json:"checked_at"` // unix ms
}
