// Package api exposes address checks over HTTP. It only shapes data; all
// semantics live in the orchestrator.
package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"solana-address-checker/internal/domain"
	"solana-address-checker/internal/observability"
	"solana-address-checker/internal/orchestrator"
)

// Checker runs one address check.
type Checker interface {
	Check(ctx context.Context, raw string) (*domain.CompositeResult, error)
}

// checkRequest is the POST /api/check body.
type checkRequest struct {
	Address string `json:"address"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the gin engine serving checks, health and metrics.
func NewRouter(checker Checker, logger logrus.FieldLogger, metricsEnabled bool) *gin.Engine {
	router := gin.New()
	router.Use(accessLog(logger, "/health", "/metrics"), gin.Recovery())

	h := &handler{checker: checker, logger: logger}
	router.GET("/health", h.health)
	if metricsEnabled {
		router.GET("/metrics", gin.WrapH(observability.Handler()))
	}
	router.GET("/api/check/:address", func(c *gin.Context) {
		h.check(c, c.Param("address"))
	})
	router.POST("/api/check", func(c *gin.Context) {
		var req checkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		h.check(c, req.Address)
	})
	return router
}

type handler struct {
	checker Checker
	logger  logrus.FieldLogger
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// check answers 200 with the result, including invalid addresses, and 500
// only for a fatal configuration error.
func (h *handler) check(c *gin.Context, raw string) {
	result, err := h.checker.Check(c.Request.Context(), raw)
	if err != nil {
		var fatal *orchestrator.FatalConfigError
		if errors.As(err, &fatal) {
			h.logger.WithError(err).Error("check failed on configuration")
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// accessLog logs one line per request, skipping the given paths.
func accessLog(logger logrus.FieldLogger, notLogged ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(notLogged))
	for _, p := range notLogged {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()

		if _, ok := skip[path]; ok {
			return
		}
		stop := time.Since(start)
		entry := logger.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"latency":  fmt.Sprintf("%d us", int(math.Ceil(float64(stop.Nanoseconds())/1000.0))),
			"clientIP": c.ClientIP(),
			"method":   c.Request.Method,
			"path":     path,
		})

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}
