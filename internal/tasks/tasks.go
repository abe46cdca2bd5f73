// package tasks implements the resumable catalog-to-debrid sync engine.
//
// The core abstraction is SyncEngine, which orchestrates page fetching,
// quality selection, deduplicated submission, and checkpointing for one
// bounded batch. Operations emit progress updates via channels for
// non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/duskren/ytrd/internal/checkpoint"
	"github.com/duskren/ytrd/internal/services"
	"github.com/duskren/ytrd/internal/shared"
)

// Outcome classifies one submission attempt.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeDuplicate
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFailed:
		return "failed"
	default:
		return ""
	}
}

// SyncResult aggregates the counters of one run. The counts are the
// user-visible contract: repeated invocations are audited through them.
type SyncResult struct {
	StartPage       int
	EndPage         int
	TotalPages      int
	PagesProcessed  int
	ItemsProcessed  int
	Added           int
	Skipped         int
	Failed          int
	NextPage        int // page to resume from; 0 when the walk is complete
	CatalogComplete bool
}

// SyncEngine orchestrates one bounded batch of catalog pages or one feed
// pass. It owns the in-memory dedup index and the batch counters; nothing
// here is safe for concurrent use and nothing needs to be, the engine runs
// a single logical thread of control.
type SyncEngine struct {
	catalog services.Catalog
	debrid  services.Destination
	feed    services.Feed

	checkpoints *checkpoint.Store
	pacer       Pacer
	logger      *log.Logger
	index       *HashIndex
}

// EngineOpts contains optional dependencies for a SyncEngine.
type EngineOpts struct {
	Checkpoints *checkpoint.Store
	Pacer       Pacer
	Logger      *log.Logger
}

// NewSyncEngine creates a SyncEngine with the provided services.
func NewSyncEngine(catalog services.Catalog, debrid services.Destination, feed services.Feed, opts EngineOpts) *SyncEngine {
	if opts.Checkpoints == nil {
		opts.Checkpoints = checkpoint.NewStore("")
	}
	if opts.Pacer == nil {
		opts.Pacer = NewPacer(shared.PacingConfig{})
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &SyncEngine{
		catalog:     catalog,
		debrid:      debrid,
		feed:        feed,
		checkpoints: opts.Checkpoints,
		pacer:       opts.Pacer,
		logger:      opts.Logger,
	}
}

// ensureIndex loads the destination's current holdings once per engine.
func (e *SyncEngine) ensureIndex(ctx context.Context, progress chan<- ProgressUpdate) error {
	if e.index != nil {
		return nil
	}
	if e.debrid == nil {
		return fmt.Errorf("%w: destination service not initialized", shared.ErrAPIRequest)
	}

	e.sendProgress(progress, loadingIndexUpdate())

	index, err := LoadHashIndex(ctx, e.debrid)
	if err != nil {
		return fmt.Errorf("failed to list destination holdings: %w", err)
	}

	e.index = index
	e.logger.Info("loaded destination index", "hashes", index.Len())
	e.sendProgress(progress, indexLoadedUpdate(index.Len()))
	return nil
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SyncEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
