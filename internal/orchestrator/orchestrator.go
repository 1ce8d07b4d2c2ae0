// Package orchestrator runs one address check:
// validate → fetch (rpc, then indexer+market, then whois) → normalize → score.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"solana-address-checker/internal/address"
	"solana-address-checker/internal/config"
	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/normalization"
	"solana-address-checker/internal/observability"
	"solana-address-checker/internal/periods"
	"solana-address-checker/internal/scoring"
	"solana-address-checker/internal/solana"
	"solana-address-checker/internal/upstream"
)

// AddressFetcher fetches data keyed by an address.
type AddressFetcher interface {
	Fetch(ctx context.Context, address string) upstream.Response
}

// WindowedFetcher fetches data keyed by an address for a set of windows.
type WindowedFetcher interface {
	Fetch(ctx context.Context, address string, windows []domain.Window) upstream.Response
}

// DomainFetcher fetches registration data for a website domain.
type DomainFetcher interface {
	Fetch(ctx context.Context, domain string) upstream.Response
}

// Options for creating Orchestrator.
type Options struct {
	Config *config.Config

	// Upstream clients
	RPC     AddressFetcher
	Indexer WindowedFetcher
	Market  WindowedFetcher
	Whois   DomainFetcher

	Scoring *scoring.Config // nil uses scoring.DefaultConfig
	Logger  logrus.FieldLogger
	Now     func() time.Time
}

// Orchestrator coordinates validation, fetching, normalization and scoring.
type Orchestrator struct {
	cfg     *config.Config
	rpc     AddressFetcher
	indexer WindowedFetcher
	market  WindowedFetcher
	whois   DomainFetcher
	scoring scoring.Config
	tiers   []periods.Tier
	logger  logrus.FieldLogger
	now     func() time.Time

	setupErr error
}

// New creates a new Orchestrator. Configuration problems are reported by
// Check as FatalConfigError.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		cfg:     opts.Config,
		rpc:     opts.RPC,
		indexer: opts.Indexer,
		market:  opts.Market,
		whois:   opts.Whois,
		scoring: scoring.DefaultConfig(),
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if opts.Scoring != nil {
		o.scoring = *opts.Scoring
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	if o.now == nil {
		o.now = time.Now
	}
	o.setupErr = o.validateSetup()
	return o
}

func (o *Orchestrator) validateSetup() error {
	if o.cfg == nil {
		return errors.New("no configuration")
	}
	var errs []error
	if err := o.cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	tiers, err := periods.FromConfig(o.cfg.Periods)
	if err != nil {
		errs = append(errs, err)
	}
	o.tiers = tiers
	if o.rpc == nil || o.indexer == nil || o.market == nil || o.whois == nil {
		errs = append(errs, errors.New("upstream client missing"))
	}
	return errors.Join(errs...)
}

// fetched holds every upstream response of one check.
type fetched struct {
	rpc       upstream.Response
	indexer   upstream.Response
	market    upstream.Response
	whois     upstream.Response
	solMarket upstream.Response // SOL/USD rate for non-token addresses
	windows   []domain.Window
}

// Check validates raw and, when valid, builds the composite result. The
// returned error is always a *FatalConfigError.
func (o *Orchestrator) Check(ctx context.Context, raw string) (*domain.CompositeResult, error) {
	start := o.now()
	log := o.logger.WithField("raw", raw)
	o.transition(log, domain.StateReceived)

	if o.setupErr != nil {
		o.finish(log, domain.StateFatal, start)
		log.WithError(o.setupErr).Error("address check aborted")
		return nil, &FatalConfigError{Err: o.setupErr}
	}

	o.transition(log, domain.StateValidating)
	addr := address.Validate(raw)
	result := &domain.CompositeResult{
		Address:   addr,
		CheckedAt: start.UnixMilli(),
	}
	if !addr.Valid {
		result.State = domain.StateInvalid
		log.WithField("message", addr.Message).Info("address rejected")
		o.finish(log, domain.StateInvalid, start)
		return result, nil
	}

	log = log.WithField("address", addr.Normalized)
	o.transition(log, domain.StateFetching)
	f := o.fetch(ctx, addr.Normalized)

	o.transition(log, domain.StateNormalizing)
	account := normalization.Account(f.rpc)
	txs := normalization.Transactions(f.rpc)
	market := normalization.Market(f.market, f.windows)
	dist := normalization.Distribution(f.indexer, f.rpc, f.windows)
	social := normalization.Social(f.market, f.whois)

	solRate := normalization.SOLRate(f.market)
	if !solRate.Known {
		solRate = normalization.SOLRate(f.solMarket)
	}
	balance := normalization.Balance(f.rpc, solRate)

	result.Address.Kind = normalization.Kind(account)
	result.Balance = &balance
	result.Transactions = &txs
	result.Account = &account
	result.Market = &market
	result.Distribution = &dist
	result.Social = &social
	result.Windows = f.windows
	result.Sources = map[domain.Source]domain.SourceStatus{
		domain.SourceRPC:     f.rpc.Status(),
		domain.SourceIndexer: f.indexer.Status(),
		domain.SourceMarket:  f.market.Status(),
		domain.SourceWhois:   f.whois.Status(),
	}

	o.transition(log, domain.StateScoring)
	scores := scoring.Score(o.scoring, scoring.Input{
		Account:      account,
		Transactions: txs,
		Market:       market,
		Distribution: dist,
		Social:       social,
		Now:          start,
	})
	result.Scores = &scores
	observability.RecordRiskLevel(string(scores.RiskLevel))

	result.State = domain.StateSuccess
	o.finish(log.WithFields(logrus.Fields{
		"kind":          result.Address.Kind,
		"overall_score": scores.OverallScore,
		"risk_level":    scores.RiskLevel,
	}), domain.StateSuccess, start)
	return result, nil
}

// fetch runs the three fetch stages. Every stage waits for all its clients.
func (o *Orchestrator) fetch(ctx context.Context, addr string) fetched {
	var f fetched

	// Stage 1: on-chain data gives the first-activity time.
	f.rpc = guard(domain.SourceRPC, o.now, func() upstream.Response {
		return o.rpc.Fetch(ctx, addr)
	})
	f.windows = periods.Select(o.tiers, firstSeen(f.rpc), o.now())

	// Stage 2: holder and market data for the selected windows.
	var g errgroup.Group
	g.Go(func() error {
		f.indexer = guard(domain.SourceIndexer, o.now, func() upstream.Response {
			return o.indexer.Fetch(ctx, addr, f.windows)
		})
		return nil
	})
	g.Go(func() error {
		f.market = guard(domain.SourceMarket, o.now, func() upstream.Response {
			return o.market.Fetch(ctx, addr, f.windows)
		})
		return nil
	})
	if needsSOLRate(f.rpc, addr) {
		g.Go(func() error {
			f.solMarket = guard(domain.SourceMarket, o.now, func() upstream.Response {
				return o.market.Fetch(ctx, solana.WSOLMint, f.windows)
			})
			return nil
		})
	}
	_ = g.Wait()

	// Stage 3: registration data for the project's website.
	site := normalization.WebsiteDomain(f.market)
	f.whois = guard(domain.SourceWhois, o.now, func() upstream.Response {
		return o.whois.Fetch(ctx, site)
	})

	for _, r := range []upstream.Response{f.rpc, f.indexer, f.market, f.whois} {
		if r.Err != nil && r.Err.Kind != upstream.KindSkipped {
			o.logger.WithFields(logrus.Fields{
				"address":    addr,
				"source":     r.Source,
				"error_kind": r.Err.Kind,
			}).Info("source unavailable, continuing with partial data")
		}
	}
	return f
}

// guard converts a panicking fetch into a failed response.
func guard(source domain.Source, now func() time.Time, fetch func() upstream.Response) (resp upstream.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = upstream.Failure(source, now(), upstream.KindRequestFailed, fmt.Sprintf("panic: %v", r))
		}
	}()
	resp = fetch()
	resp.Source = source
	return resp
}

// firstSeen returns the oldest signature time, or zero when unknown or when
// the history was truncated at the signature limit.
func firstSeen(rpc upstream.Response) time.Time {
	txs := normalization.Transactions(rpc)
	if !txs.FirstSeenUnix.Known || txs.TotalCount.Or(0) >= upstream.SignatureLimit {
		return time.Time{}
	}
	return time.Unix(txs.FirstSeenUnix.V, 0)
}

// needsSOLRate reports whether the address holds SOL whose USD value the
// address's own market data cannot price.
func needsSOLRate(rpc upstream.Response, addr string) bool {
	if addr == solana.WSOLMint {
		return false
	}
	if normalization.Account(rpc).IsToken {
		return false
	}
	return normalization.Balance(rpc, domain.Value[float64]{}).SOLBalance.Or(0) > 0
}

func (o *Orchestrator) transition(log logrus.FieldLogger, state domain.State) {
	log.WithField("state", state).Debug("address check state")
}

func (o *Orchestrator) finish(log logrus.FieldLogger, state domain.State, start time.Time) {
	d := o.now().Sub(start)
	observability.RecordCheck(string(state), d.Seconds())
	log.WithFields(logrus.Fields{"state": state, "duration": d}).Info("address check finished")
}
