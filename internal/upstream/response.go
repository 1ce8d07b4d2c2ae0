// Package upstream holds the per-source clients that fetch raw data for an
// address check. Every client returns a Response; failures are data, never
// errors crossing into normalization.
package upstream

import (
	"fmt"
	"time"

	"solana-address-checker/internal/domain"
)

// ErrorKind classifies a soft upstream failure.
type ErrorKind string

const (
	KindRateLimited   ErrorKind = "rate_limited"
	KindRequestFailed ErrorKind = "request_failed"
	KindInvalidJSON   ErrorKind = "invalid_json"
	KindSkipped       ErrorKind = "skipped"
)

// Error describes why a Response carries no payload.
type Error struct {
	Kind   ErrorKind
	Detail string
}

// Error renders "kind" or "kind: detail".
func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Response is the result of one client fetch.
type Response struct {
	Source    domain.Source
	Payload   Payload
	FetchedAt time.Time
	OK        bool
	Cached    bool
	Missing   []string // follow-up parts absent from a successful payload
	Err       *Error
}

// Status summarizes the response for CompositeResult.Sources.
func (r Response) Status() domain.SourceStatus {
	s := domain.SourceStatus{OK: r.OK, Cached: r.Cached, Missing: r.Missing}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}
	return s
}

// Failure returns a response carrying a soft error of kind.
func Failure(source domain.Source, at time.Time, kind ErrorKind, detail string) Response {
	return Response{
		Source:    source,
		FetchedAt: at,
		Err:       &Error{Kind: kind, Detail: detail},
	}
}

// Skipped returns a failure response for a fetch whose input was missing.
func Skipped(source domain.Source, at time.Time, reason string) Response {
	return Failure(source, at, KindSkipped, reason)
}
