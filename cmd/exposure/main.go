// Package main analyzes the privacy exposure of a Solana wallet and prints
// the resulting report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"solana-exposure/internal/exposure"
	"solana-exposure/internal/labels"
	"solana-exposure/internal/observability"
	"solana-exposure/internal/solana"
	"solana-exposure/internal/storage"
	"solana-exposure/internal/storage/memory"
	"solana-exposure/internal/storage/migrations"
	pgstore "solana-exposure/internal/storage/postgres"
)

// Public pool used when no endpoints are configured.
var defaultEndpoints = []string{
	"https://api.mainnet-beta.solana.com",
	"https://rpc.ankr.com/solana",
	"https://solana-mainnet.rpc.extrnode.com",
	"https://mainnet.rpcpool.com",
}

func main() {
	loadEnvFile()

	// Parse flags (env vars as defaults)
	address := flag.String("address", "", "Wallet address to analyze")
	endpoints := flag.String("endpoints", os.Getenv("EXPOSURE_RPC_ENDPOINTS"), "Comma-separated Solana RPC endpoints, in rotation order")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string for the report cache (in-memory if empty)")
	labelsPath := flag.String("labels", "", "Path to a label registry JSON file (embedded defaults if empty)")
	txLimit := flag.Int("tx-limit", 0, "Signature history limit (0 uses the default)")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall analysis timeout")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (disabled if empty)")
	verbose := flag.Bool("verbose", false, "Log collector degradations and RPC rotations")

	flag.Parse()

	logger := log.New(os.Stderr, "[exposure] ", log.LstdFlags)

	if *address == "" {
		logger.Fatal("--address is required")
	}

	pool := defaultEndpoints
	if *endpoints != "" {
		pool = splitList(*endpoints)
	}

	registry := labels.Default()
	if *labelsPath != "" {
		loaded, err := labels.Load(*labelsPath)
		if err != nil {
			logger.Fatalf("load label registry: %v", err)
		}
		registry = loaded
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	metrics := observability.NewMetrics("")
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Printf("metrics server: %v", err)
			}
		}()
	}

	clientOpts := []solana.ClientOption{
		solana.WithObserver(observability.NewClientObserver(metrics)),
	}
	client, err := solana.NewClient(pool, clientOpts...)
	if err != nil {
		logger.Fatalf("create chain client: %v", err)
	}

	var store storage.ReportStore
	if *postgresDSN != "" {
		pgPool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("connect report cache: %v", err)
		}
		defer pgPool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pgPool); err != nil {
			logger.Fatalf("migrate report cache: %v", err)
		}
		store = pgstore.NewReportStore(pgPool)
	} else {
		store = memory.NewReportStore()
	}

	engineLogger := logger
	if !*verbose {
		engineLogger = log.New(discard{}, "", 0)
	}

	engine, err := exposure.New(exposure.Options{
		Client:  client,
		Store:   store,
		Labels:  registry,
		Metrics: metrics,
		TxLimit: *txLimit,
		Logger:  engineLogger,
	})
	if err != nil {
		logger.Fatalf("create engine: %v", err)
	}

	report, err := engine.Analyze(ctx, *address)
	if err != nil {
		logger.Fatalf("analyze %s: %v", *address, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Fatalf("encode report: %v", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
