package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/duskren/ytrd/internal/checkpoint"
	"github.com/duskren/ytrd/internal/services"
	"github.com/duskren/ytrd/internal/shared"
)

// defaultQualities is the preference order used when none is configured.
var defaultQualities = []string{"2160p", "1080p"}

// BulkOpts configures one resumable batch over the full catalog.
type BulkOpts struct {
	StartPage       int      // >0 overrides the checkpoint's resume point
	MaxPages        int      // >0 caps the page span explicitly, overriding BatchSize
	BatchSize       int      // pages per batch (default 500)
	MinRating       float64  // minimum upstream rating filter
	Qualities       []string // quality preference order
	CheckpointEvery int      // pages between checkpoint saves (default 10)
}

// LatestOpts configures a latest-only polling pass.
type LatestOpts struct {
	Limit     int
	MinRating float64
	Qualities []string
}

// Bulk walks one bounded batch of catalog pages, submitting unseen
// torrents and checkpointing progress so an interrupted or split walk can
// resume. Page 1 failing is fatal (there is nothing to resume from yet);
// any later page failing is checkpointed and skipped.
func (e *SyncEngine) Bulk(ctx context.Context, progress chan<- ProgressUpdate, opts BulkOpts) (*SyncResult, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.CheckpointEvery <= 0 {
		opts.CheckpointEvery = 10
	}
	if len(opts.Qualities) == 0 {
		opts.Qualities = defaultQualities
	}

	if err := e.ensureIndex(ctx, progress); err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchingPageUpdate(1, 1))
	firstPage, err := e.catalog.MoviesPage(ctx, 1, opts.MinRating)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page 1: %w", err)
	}

	totalPages := firstPage.PageCount
	if totalPages == 0 {
		return nil, fmt.Errorf("%w: catalog reported no pages", shared.ErrCatalogUnavailable)
	}

	startPage := opts.StartPage
	if startPage <= 0 {
		prior, err := e.checkpoints.Load()
		switch {
		case err == nil:
			startPage = prior.LastCompletedPage + 1
		case errors.Is(err, shared.ErrNoCheckpoint):
			startPage = 1
		default:
			return nil, err
		}
	}

	span := opts.BatchSize
	if opts.MaxPages > 0 {
		span = opts.MaxPages
	}
	endPage := min(startPage+span-1, totalPages)

	e.logger.Info("starting batch",
		"start_page", startPage, "end_page", endPage, "total_pages", totalPages)

	state := checkpoint.BatchState{
		LastCompletedPage: startPage - 1,
		LastAttemptedPage: startPage - 1,
		TotalPages:        totalPages,
	}
	itemsProcessed := 0

	for page := startPage; page <= endPage; page++ {
		if err := ctx.Err(); err != nil {
			if saveErr := e.checkpoints.Save(state); saveErr != nil {
				e.logger.Warn("failed to save checkpoint", "err", saveErr)
			}
			return nil, err
		}

		state.LastAttemptedPage = page

		var movies []services.Movie
		if page == 1 {
			// Already fetched during init.
			movies = firstPage.Movies
		} else {
			// Page fetches share the destination's pacing so the catalog
			// sees the same minimum interval between requests.
			if err := e.pacer.Pace(ctx); err != nil {
				if saveErr := e.checkpoints.Save(state); saveErr != nil {
					e.logger.Warn("failed to save checkpoint", "err", saveErr)
				}
				return nil, err
			}

			e.sendProgress(progress, fetchingPageUpdate(page, endPage))
			pageData, err := e.catalog.MoviesPage(ctx, page, opts.MinRating)
			if err != nil {
				// A single bad page does not abort the batch. Record the
				// gap immediately so a crash right after still shows it.
				e.logger.Error("page fetch failed, continuing", "page", page, "err", err)
				e.sendProgress(progress, pageFailedUpdate(page, endPage, err))
				if saveErr := e.checkpoints.Save(state); saveErr != nil {
					e.logger.Warn("failed to save checkpoint", "err", saveErr)
				}
				continue
			}
			movies = pageData.Movies
		}

		itemsProcessed += e.processMovies(ctx, progress, movies, opts.Qualities, &state)

		state.LastCompletedPage = page
		e.sendProgress(progress, pageDoneUpdate(page, endPage, state.Added, state.Skipped, state.Failed))

		if page%opts.CheckpointEvery == 0 {
			if err := e.checkpoints.Save(state); err != nil {
				e.logger.Warn("failed to save checkpoint", "page", page, "err", err)
			} else {
				e.sendProgress(progress, checkpointUpdate(page))
			}
		}
	}

	catalogComplete := endPage >= totalPages
	state.BatchComplete = catalogComplete

	if catalogComplete {
		if err := e.checkpoints.MarkComplete(time.Now()); err != nil {
			e.logger.Warn("failed to write completion marker", "err", err)
		}
	}

	if err := e.checkpoints.Save(state); err != nil {
		e.logger.Warn("failed to save final checkpoint", "err", err)
	}

	result := &SyncResult{
		StartPage:       startPage,
		EndPage:         endPage,
		TotalPages:      totalPages,
		PagesProcessed:  max(endPage-startPage+1, 0),
		ItemsProcessed:  itemsProcessed,
		Added:           state.Added,
		Skipped:         state.Skipped,
		Failed:          state.Failed,
		CatalogComplete: catalogComplete,
	}
	if !catalogComplete {
		result.NextPage = endPage + 1
	}

	return result, nil
}

// Latest runs a single unpaginated pass over the newest catalog entries.
// Used for incremental polling once the full catalog has been walked; it
// neither reads nor writes checkpoints.
func (e *SyncEngine) Latest(ctx context.Context, progress chan<- ProgressUpdate, opts LatestOpts) (*SyncResult, error) {
	if len(opts.Qualities) == 0 {
		opts.Qualities = defaultQualities
	}

	if err := e.ensureIndex(ctx, progress); err != nil {
		return nil, err
	}

	movies, err := e.catalog.LatestMovies(ctx, opts.Limit, opts.MinRating)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest movies: %w", err)
	}

	var state checkpoint.BatchState
	processed := e.processMovies(ctx, progress, movies, opts.Qualities, &state)

	return &SyncResult{
		ItemsProcessed: processed,
		Added:          state.Added,
		Skipped:        state.Skipped,
		Failed:         state.Failed,
	}, nil
}

// Feed runs one pass over the episode RSS feed. Feed items carry their own
// magnet link, which is submitted verbatim rather than rebuilt.
func (e *SyncEngine) Feed(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if e.feed == nil {
		return nil, fmt.Errorf("%w: feed service not initialized", shared.ErrFeedUnavailable)
	}

	if err := e.ensureIndex(ctx, progress); err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchingFeedUpdate())
	episodes, err := e.feed.Episodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	e.sendProgress(progress, feedLoadedUpdate(len(episodes)))

	result := &SyncResult{}

	for i, episode := range episodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.ItemsProcessed++

		if e.index.Contains(episode.Hash) {
			result.Skipped++
			continue
		}

		switch e.submitMagnet(ctx, episode.Magnet, episode.Hash, episode.Title) {
		case OutcomeAdded:
			result.Added++
			e.sendProgress(progress, itemAddedUpdate(i+1, len(episodes), episode.Title, nil))
		case OutcomeFailed:
			result.Failed++
		}
	}

	return result, nil
}

// processMovies runs the item loop for one page worth of movies and
// returns how many movies were processed. Counter updates land in state:
// added and failed count per torrent, skipped counts per movie.
func (e *SyncEngine) processMovies(ctx context.Context, progress chan<- ProgressUpdate, movies []services.Movie, qualities []string, state *checkpoint.BatchState) int {
	processed := 0

	for i, movie := range movies {
		processed++

		selected := SelectTorrents(movie, qualities)
		if len(selected) == 0 {
			state.Skipped++
			continue
		}

		var addedQualities []string
		for _, torrent := range selected {
			name := fmt.Sprintf("%s %d %s", movie.Title, movie.Year, torrent.Quality)

			switch e.submit(ctx, torrent.Hash, name) {
			case OutcomeAdded:
				state.Added++
				addedQualities = append(addedQualities, torrent.Quality)
			case OutcomeFailed:
				state.Failed++
			}
		}

		if len(addedQualities) > 0 {
			e.logger.Info("added", "title", movie.Title, "year", movie.Year, "qualities", addedQualities)
			e.sendProgress(progress, itemAddedUpdate(i+1, len(movies), fmt.Sprintf("%s (%d)", movie.Title, movie.Year), addedQualities))
		} else {
			state.Skipped++
		}
	}

	return processed
}
