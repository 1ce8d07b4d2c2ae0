// Package app wires configuration, stores and clients into an Orchestrator.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"solana-address-checker/internal/cache"
	"solana-address-checker/internal/config"
	"solana-address-checker/internal/orchestrator"
	"solana-address-checker/internal/ratelimit"
	"solana-address-checker/internal/solana"
	"solana-address-checker/internal/storage"
	"solana-address-checker/internal/storage/memory"
	"solana-address-checker/internal/storage/migrations"
	pgstore "solana-address-checker/internal/storage/postgres"
	redisstore "solana-address-checker/internal/storage/redis"
	"solana-address-checker/internal/upstream"
)

// Stores holds the shared cache and rate counter stores.
type Stores struct {
	Cache storage.CacheStore
	Rate  storage.RateCounterStore
}

// NewStores creates stores for the configured backend. The returned cleanup
// releases connections.
func NewStores(ctx context.Context, cfg *config.Config) (*Stores, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return &Stores{
			Cache: memory.NewCacheStore(),
			Rate:  memory.NewRateCounterStore(),
		}, func() {}, nil

	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return &Stores{
			Cache: redisstore.NewCacheStore(client),
			Rate:  redisstore.NewRateCounterStore(client),
		}, func() { client.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
		}
		return &Stores{
			Cache: pgstore.NewCacheStore(pool),
			Rate:  pgstore.NewRateCounterStore(pool),
		}, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", storage.ErrUnknownBackend, cfg.Store.Backend)
}

// NewOrchestrator builds the upstream clients over stores and returns the
// orchestrator. Configuration errors surface from Check.
func NewOrchestrator(cfg *config.Config, stores *Stores, logger logrus.FieldLogger) *orchestrator.Orchestrator {
	responses := cache.New(cfg.Cache, stores.Cache, logger)
	limiter := ratelimit.New(cfg.RateLimit, stores.Rate, logger)
	gate := upstream.NewGate(responses, limiter, logger)

	rpcCfg := cfg.Upstreams.RPC
	opts := []solana.ClientOption{solana.WithMaxRetries(rpcCfg.MaxRetries)}
	if rpcCfg.Timeout > 0 {
		opts = append(opts, solana.WithTimeout(rpcCfg.Timeout))
	}
	rpc := solana.NewHTTPClient(rpcCfg.BaseURL, opts...)

	return orchestrator.New(orchestrator.Options{
		Config:  cfg,
		RPC:     upstream.NewRPCClient(gate, rpc, rpcCfg),
		Indexer: upstream.NewIndexerClient(gate, cfg.Upstreams.Indexer, nil),
		Market:  upstream.NewMarketClient(gate, cfg.Upstreams.Market, nil),
		Whois:   upstream.NewWhoisClient(gate, cfg.Upstreams.Whois, nil),
		Logger:  logger,
	})
}
