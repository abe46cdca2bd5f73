package main

import (
	"context"
	"os"

	"github.com/duskren/ytrd/internal/services"
	"github.com/duskren/ytrd/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	catalog := services.NewYTSService(config.Catalog.BaseURL, config.Catalog.PageSize, nil)

	var debrid services.Destination
	if config.Debrid.APIToken != "" {
		debrid = services.NewRealDebridService(config.Debrid.APIToken, config.Debrid.BaseURL)
	}

	var feed services.Feed
	if config.Feed.URL != "" {
		feed = services.NewShowRSSService(config.Feed.URL, nil)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Debrid:  debrid,
		Feed:    feed,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "ytrd",
		Usage:    "Sync YTS movies & ShowRSS episodes to Real-Debrid",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
