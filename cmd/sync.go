package main

import (
	"context"

	"github.com/duskren/ytrd/internal/services"
	"github.com/duskren/ytrd/internal/shared"
	"github.com/duskren/ytrd/internal/tasks"
	"github.com/duskren/ytrd/internal/ui"
	"github.com/urfave/cli/v3"
)

// SyncBulk walks one resumable batch of catalog pages.
func (r *Runner) SyncBulk(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDebrid(); err != nil {
		return err
	}

	opts := tasks.BulkOpts{
		StartPage: cmd.Int("start-page"),
		MaxPages:  cmd.Int("max-pages"),
		BatchSize: cmd.Int("batch-size"),
		MinRating: cmd.Float("min-rating"),
		Qualities: r.config.Sync.Qualities,
	}
	if opts.StartPage <= 0 {
		opts.StartPage = r.config.Sync.StartPage
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = r.config.Sync.MaxPages
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = r.config.Sync.BatchSize
	}
	if opts.MinRating <= 0 {
		opts.MinRating = r.config.Catalog.MinRating
	}

	logger, _ := shared.RunLogger(r.logger)
	logger.Info("starting bulk sync",
		"start_page", opts.StartPage, "max_pages", opts.MaxPages, "batch_size", opts.BatchSize)

	progressCh, stop := r.startProgress()
	result, err := r.engine.Bulk(ctx, progressCh, opts)
	stop()

	if err != nil {
		return err
	}
	logger.Info("bulk sync finished",
		"added", result.Added, "skipped", result.Skipped, "failed", result.Failed)

	return r.writePlainln("%s", ui.RenderSummary("Bulk sync", result))
}

// SyncMovies runs a single pass over the newest catalog entries.
func (r *Runner) SyncMovies(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDebrid(); err != nil {
		return err
	}

	opts := tasks.LatestOpts{
		Limit:     cmd.Int("limit"),
		MinRating: cmd.Float("min-rating"),
		Qualities: r.config.Sync.Qualities,
	}
	if opts.MinRating <= 0 {
		opts.MinRating = r.config.Catalog.MinRating
	}

	logger, _ := shared.RunLogger(r.logger)
	logger.Info("syncing latest movies", "limit", opts.Limit)

	progressCh, stop := r.startProgress()
	result, err := r.engine.Latest(ctx, progressCh, opts)
	stop()

	if err != nil {
		return err
	}

	return r.writePlainln("%s", ui.RenderSummary("Latest movies", result))
}

// SyncShows runs one pass over the episode feed.
func (r *Runner) SyncShows(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDebrid(); err != nil {
		return err
	}

	feedURL := cmd.String("feed")
	if feedURL == "" {
		feedURL = r.config.Feed.URL
	} else {
		r.feed = services.NewShowRSSService(feedURL, nil)
		r.rebuildEngine()
	}

	logger, _ := shared.RunLogger(r.logger)
	logger.Info("syncing episode feed", "feed", feedURL)

	progressCh, stop := r.startProgress()
	result, err := r.engine.Feed(ctx, progressCh)
	stop()

	if err != nil {
		return err
	}

	return r.writePlainln("%s", ui.RenderSummary("Episode feed", result))
}

// syncCommand groups the three synchronization passes.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Synchronize catalog and feed items to Real-Debrid",
		Commands: []*cli.Command{
			{
				Name:  "bulk",
				Usage: "Walk the full movie catalog in resumable batches",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "start-page",
						Usage: "Page to start from, overriding the checkpoint",
					},
					&cli.IntFlag{
						Name:  "max-pages",
						Usage: "Maximum pages to process this run",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Pages per batch when max-pages is not set",
					},
					&cli.FloatFlag{
						Name:  "min-rating",
						Usage: "Minimum rating filter for catalog entries",
					},
				},
				Action: r.SyncBulk,
			},
			{
				Name:  "movies",
				Usage: "Submit the newest catalog entries",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "How many recent movies to check",
						Value: 20,
					},
					&cli.FloatFlag{
						Name:  "min-rating",
						Usage: "Minimum rating filter for catalog entries",
					},
				},
				Action: r.SyncMovies,
			},
			{
				Name:  "shows",
				Usage: "Submit new episodes from the RSS feed",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "feed",
						Usage: "Feed URL, overriding the configured one",
					},
				},
				Action: r.SyncShows,
			},
		},
	}
}
