package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-address-checker/internal/address"
	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/logging"
	"solana-address-checker/internal/orchestrator"
)

type stubChecker struct {
	got string
	err error
}

func (s *stubChecker) Check(ctx context.Context, raw string) (*domain.CompositeResult, error) {
	s.got = raw
	if s.err != nil {
		return nil, s.err
	}
	addr := address.Validate(raw)
	state := domain.StateSuccess
	if !addr.Valid {
		state = domain.StateInvalid
	}
	return &domain.CompositeResult{Address: addr, State: state}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const usdc = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

func TestRouter_Health(t *testing.T) {
	router := NewRouter(&stubChecker{}, logging.Discard(), false)

	rec := serve(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	router := NewRouter(&stubChecker{}, logging.Discard(), true)

	rec := serve(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CheckGet(t *testing.T) {
	checker := &stubChecker{}
	router := NewRouter(checker, logging.Discard(), false)

	rec := serve(t, router, http.MethodGet, "/api/check/"+usdc, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usdc, checker.got)

	var result domain.CompositeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.StateSuccess, result.State)
	assert.Equal(t, usdc, result.Address.Normalized)
}

func TestRouter_CheckPostInvalidAddress(t *testing.T) {
	router := NewRouter(&stubChecker{}, logging.Discard(), false)

	rec := serve(t, router, http.MethodPost, "/api/check", `{"address":"not-an-address"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.CompositeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.StateInvalid, result.State)
	assert.False(t, result.Address.Valid)
}

func TestRouter_CheckPostBadBody(t *testing.T) {
	router := NewRouter(&stubChecker{}, logging.Discard(), false)

	rec := serve(t, router, http.MethodPost, "/api/check", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_FatalConfig(t *testing.T) {
	checker := &stubChecker{err: &orchestrator.FatalConfigError{Err: errors.New("missing required configuration: upstreams.whois.api_key")}}
	router := NewRouter(checker, logging.Discard(), false)

	rec := serve(t, router, http.MethodGet, "/api/check/"+usdc, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstreams.whois.api_key")
}
