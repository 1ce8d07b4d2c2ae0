// Package main checks one address and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"solana-address-checker/internal/app"
	"solana-address-checker/internal/config"
	"solana-address-checker/internal/logging"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CHECKER_CONFIG"), "Path to YAML config file")
	timeout := flag.Duration("timeout", 90*time.Second, "Overall check timeout")
	pretty := flag.Bool("pretty", true, "Indent JSON output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <address>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, flag.Arg(0), *timeout, *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, address string, timeout time.Duration, pretty bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// stdout carries the result; logs go only to a configured file.
	if cfg.Logging.File == "" {
		cfg.Logging.Enabled = false
	}
	logger := logging.New(cfg.Logging)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stores, cleanup, err := app.NewStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := app.NewOrchestrator(cfg, stores, logger).Check(ctx, address)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
