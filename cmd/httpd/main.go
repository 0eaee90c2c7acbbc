// The httpd command serves the layout recommendation engine over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/slideforge/layout-engine/internal/analyzer"
	"github.com/slideforge/layout-engine/internal/api"
	"github.com/slideforge/layout-engine/internal/catalog"
	"github.com/slideforge/layout-engine/internal/config"
	"github.com/slideforge/layout-engine/internal/history"
	"github.com/slideforge/layout-engine/internal/logging"
	"github.com/slideforge/layout-engine/internal/recommender"
	"github.com/slideforge/layout-engine/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "layout-engine: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.GetConfigPath("configs/config.yml")
	cfg, err := config.LoadWithDefaults(cfgPath, config.SetDefaults)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	store := catalog.NewStore(cat)

	vocab := analyzer.DefaultVocabulary()
	if cfg.Vocabulary.Path != "" {
		vocab, err = analyzer.LoadVocabulary(cfg.Vocabulary.Path)
		if err != nil {
			return err
		}
	}
	an := analyzer.New(vocab, logger)

	tel := telemetry.NewProvider()
	tel.Metrics.CatalogSize.Set(float64(cat.Len()))

	var recorder recommender.Recorder
	var stats api.StatsProvider
	if cfg.History.Enabled {
		repo, openErr := history.Open(cfg.History.Path)
		if openErr != nil {
			return openErr
		}
		defer repo.Close()
		recorder = repo
		stats = repo
	}

	rec := recommender.New(an, store, recorder, tel, logger)

	handler := api.NewHandler(rec, store, cfg.Catalog.Path, stats, tel, logger,
		cfg.Service.Name, cfg.Service.Version)
	server := api.NewServer(handler, cfg, logger)

	logger.Info("starting layout engine",
		logging.String("service", cfg.Service.Name),
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port),
		logging.Int("layouts", cat.Len()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}
