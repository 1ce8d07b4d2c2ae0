// Package main serves address checks over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"solana-address-checker/internal/api"
	"solana-address-checker/internal/app"
	"solana-address-checker/internal/config"
	"solana-address-checker/internal/logging"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CHECKER_CONFIG"), "Path to YAML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides server.addr)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := logging.New(cfg.Logging)
	if err := cfg.Validate(); err != nil {
		// Checks will answer with a configuration error until this is fixed.
		logger.WithError(err).Error("configuration incomplete")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := app.NewStores(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("create stores")
	}
	defer cleanup()

	checker := app.NewOrchestrator(cfg, stores, logger)

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(checker, logger, cfg.Server.MetricsEnabled),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"addr": cfg.Server.Addr, "store": cfg.Store.Backend}).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.WithField("signal", sig.String()).Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("forced shutdown")
	}
	logger.Info("shutdown complete")
}
