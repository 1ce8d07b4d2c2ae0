package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"solana-address-checker/internal/cache"
	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/observability"
	"solana-address-checker/internal/ratelimit"
	"solana-address-checker/internal/solana"
)

// Errors classified by the gate.
var (
	// ErrInvalidJSON marks a body that could not be decoded.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrRateLimited marks a call denied by the limiter or answered with 429.
	ErrRateLimited = errors.New("rate limited")
)

// PartialError reports follow-up calls missing from an otherwise usable
// payload. The gate returns such payloads but does not cache them.
type PartialError struct {
	Missing []string
}

func (e *PartialError) Error() string {
	return "partial payload: missing " + strings.Join(e.Missing, ", ")
}

// Gate is the shared fetch path: cache, rate limit, bounded call, decode, store.
type Gate struct {
	cache   *cache.ResponseCache
	limiter *ratelimit.Limiter
	logger  logrus.FieldLogger
	now     func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateClock overrides the time source.
func WithGateClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

// NewGate creates a Gate. A nil cache or limiter disables that step.
func NewGate(c *cache.ResponseCache, l *ratelimit.Limiter, logger logrus.FieldLogger, opts ...GateOption) *Gate {
	g := &Gate{
		cache:   c,
		limiter: l,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allow consults the limiter for an additional call to host.
func (g *Gate) Allow(ctx context.Context, host string) bool {
	return g.limiter.Allow(ctx, host)
}

// request is one gated fetch.
type request struct {
	source  domain.Source
	host    string
	key     string
	timeout time.Duration
	do      func(ctx context.Context) (Payload, error)
}

// fetch runs req through the gate. It never panics and never returns an error.
func (g *Gate) fetch(ctx context.Context, req request) (resp Response) {
	start := g.now()
	log := g.logger.WithFields(logrus.Fields{"source": req.source, "host": req.host})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("upstream client panicked")
			resp = Failure(req.source, g.now(), KindRequestFailed, fmt.Sprintf("panic: %v", r))
		}
		outcome := "ok"
		switch {
		case resp.Err != nil:
			outcome = string(resp.Err.Kind)
		case resp.Cached:
			outcome = "cached"
		case len(resp.Missing) > 0:
			outcome = "partial"
		}
		observability.RecordUpstreamCall(string(req.source), outcome)
	}()

	if data, ok := g.cache.Get(ctx, req.key); ok {
		payload, err := DecodePayload(data)
		if err == nil {
			observability.RecordCacheLookup(string(req.source), true)
			return Response{Source: req.source, Payload: payload, FetchedAt: start, OK: true, Cached: true}
		}
		log.WithError(err).Warn("discarding undecodable cache entry")
	}
	observability.RecordCacheLookup(string(req.source), false)

	if !g.Allow(ctx, req.host) {
		log.Warn("upstream call rate limited")
		return Failure(req.source, start, KindRateLimited, "")
	}

	callCtx := ctx
	if req.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, req.timeout)
		defer cancel()
	}

	payload, err := req.do(callCtx)
	observability.RecordUpstreamLatency(string(req.source), g.now().Sub(start).Seconds())
	var partial *PartialError
	if errors.As(err, &partial) && payload != nil {
		err = nil
	}
	if err != nil {
		kind, detail := classify(err)
		log.WithFields(logrus.Fields{"error_kind": kind, "error": detail}).Warn("upstream call failed")
		return Failure(req.source, start, kind, detail)
	}

	// Round-trip through JSON so fresh and cached payloads share one shape.
	data, err := json.Marshal(payload)
	if err != nil {
		return Failure(req.source, start, KindInvalidJSON, err.Error())
	}
	payload, err = DecodePayload(data)
	if err != nil {
		return Failure(req.source, start, KindInvalidJSON, err.Error())
	}
	resp = Response{Source: req.source, Payload: payload, FetchedAt: start, OK: true}
	if partial != nil {
		log.WithField("missing", partial.Missing).Warn("partial payload not cached")
		resp.Missing = partial.Missing
		return resp
	}
	g.cache.Set(ctx, req.key, data, 0)

	log.WithField("duration", g.now().Sub(start)).Debug("upstream call succeeded")
	return resp
}

func classify(err error) (ErrorKind, string) {
	switch {
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, solana.ErrInvalidJSON):
		return KindInvalidJSON, ""
	case errors.Is(err, ErrRateLimited), errors.Is(err, solana.ErrRateLimited):
		return KindRateLimited, ""
	}
	return KindRequestFailed, err.Error()
}

// hostOf returns the host part of a base URL, or the input when unparseable.
func hostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return base
	}
	return u.Host
}

// getJSON performs a GET and decodes the body into a Payload.
func getJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return DecodePayload(body)
}

const maxBodyBytes = 8 << 20
