// Package config loads the checker configuration once at process start.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingCredential is returned by Validate for each absent required option.
var ErrMissingCredential = errors.New("missing required configuration")

// Store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// RateLimit configures the per-host fixed-window limiter.
type RateLimit struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerWindow int  `mapstructure:"requests_per_window"`
}

// Cache configures the response cache.
type Cache struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

// TTL returns the cache TTL as a duration.
func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Logging configures log output. The core only emits events.
type Logging struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
}

// Store selects the shared store backend for cache and rate counters.
type Store struct {
	Backend string `mapstructure:"backend"`
}

// Redis connection settings.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Postgres connection settings.
type Postgres struct {
	DSN string `mapstructure:"dsn"`
}

// Upstream configures one external data source.
type Upstream struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// Upstreams groups the four data sources.
type Upstreams struct {
	RPC     Upstream `mapstructure:"rpc"`
	Indexer Upstream `mapstructure:"indexer"`
	Market  Upstream `mapstructure:"market"`
	Whois   Upstream `mapstructure:"whois"`
}

// PeriodTier maps a maximum token age to the lookback windows shown for it.
// MaxAge 0 matches any age.
type PeriodTier struct {
	MaxAge  time.Duration `mapstructure:"max_age"`
	Windows []string      `mapstructure:"windows"`
}

// Periods configures dynamic time-period selection. Empty uses built-in tiers.
type Periods struct {
	Tiers []PeriodTier `mapstructure:"tiers"`
}

// Server configures the HTTP shell.
type Server struct {
	Addr           string `mapstructure:"addr"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
}

// Config is the full configuration. It is built once and passed explicitly.
type Config struct {
	RateLimit RateLimit `mapstructure:"rate_limit"`
	Cache     Cache     `mapstructure:"cache"`
	Logging   Logging   `mapstructure:"logging"`
	Store     Store     `mapstructure:"store"`
	Redis     Redis     `mapstructure:"redis"`
	Postgres  Postgres  `mapstructure:"postgres"`
	Upstreams Upstreams `mapstructure:"upstreams"`
	Periods   Periods   `mapstructure:"periods"`
	Server    Server    `mapstructure:"server"`
}

// EnvPrefix is prepended to environment overrides, e.g. CHECKER_CACHE_TTL_SECONDS.
const EnvPrefix = "CHECKER"

func setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_window", 100)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_seconds", 300)

	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")

	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("postgres.dsn", "")

	v.SetDefault("upstreams.rpc.base_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("upstreams.rpc.api_key", "")
	v.SetDefault("upstreams.rpc.timeout", "15s")
	v.SetDefault("upstreams.rpc.max_retries", 2)

	v.SetDefault("upstreams.indexer.base_url", "https://solana-gateway.moralis.io")
	v.SetDefault("upstreams.indexer.api_key", "")
	v.SetDefault("upstreams.indexer.timeout", "30s")
	v.SetDefault("upstreams.indexer.max_retries", 0)

	v.SetDefault("upstreams.market.base_url", "https://api.dexscreener.com")
	v.SetDefault("upstreams.market.api_key", "")
	v.SetDefault("upstreams.market.timeout", "10s")
	v.SetDefault("upstreams.market.max_retries", 0)

	v.SetDefault("upstreams.whois.base_url", "")
	v.SetDefault("upstreams.whois.api_key", "")
	v.SetDefault("upstreams.whois.timeout", "10s")
	v.SetDefault("upstreams.whois.max_retries", 0)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.metrics_enabled", true)
}

// Load reads configuration from defaults, an optional YAML file and
// CHECKER_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in defaults without reading file or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate reports every missing required option.
func (c *Config) Validate() error {
	var errs []error
	require := func(value, key string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, key))
		}
	}

	require(c.Upstreams.RPC.BaseURL, "upstreams.rpc.base_url")
	require(c.Upstreams.Indexer.BaseURL, "upstreams.indexer.base_url")
	require(c.Upstreams.Indexer.APIKey, "upstreams.indexer.api_key")
	require(c.Upstreams.Market.BaseURL, "upstreams.market.base_url")
	require(c.Upstreams.Whois.BaseURL, "upstreams.whois.base_url")
	require(c.Upstreams.Whois.APIKey, "upstreams.whois.api_key")

	switch c.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		require(c.Redis.Addr, "redis.addr")
	case BackendPostgres:
		require(c.Postgres.DSN, "postgres.dsn")
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}

	return errors.Join(errs...)
}
