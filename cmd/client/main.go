package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/auth"
	"github.com/iudanet/vidtube/internal/client/catalog"
	"github.com/iudanet/vidtube/internal/client/cli"
	"github.com/iudanet/vidtube/internal/client/iocli"
	"github.com/iudanet/vidtube/internal/client/resources"
	"github.com/iudanet/vidtube/internal/client/storage/boltdb"
	"github.com/iudanet/vidtube/internal/config"
	"github.com/iudanet/vidtube/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(iocli.NewStdio(), setup)
	version := fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)

	if err := app.Command(version).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// setup собирает клиент: конфиг, логгер, локальная база, транспорт и сторы
func setup(ctx context.Context, g cli.Globals) (*cli.Deps, error) {
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return nil, err
	}
	if g.ServerURL != "" {
		cfg.Server.BaseURL = g.ServerURL
	}
	if g.DBPath != "" {
		cfg.Storage.Path = g.DBPath
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	store, err := boltdb.New(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	creds := auth.NewCredentials(store, cfg.Server.BaseURL, logger)
	client := api.NewClient(cfg.Server.BaseURL, creds,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
		api.WithLogger(logger),
	)

	logger.Debug("client configured", "server", cfg.Server.BaseURL, "db", cfg.Storage.Path)

	return &cli.Deps{
		Session:   auth.NewSession(client, creds, logger),
		Catalog:   catalog.NewStore(client, catalog.WithLogger(logger)),
		Resources: resources.New(client),
		Logger:    logger,
		Close:     store.Close,
	}, nil
}
