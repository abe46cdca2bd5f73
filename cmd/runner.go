package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/duskren/ytrd/internal/checkpoint"
	"github.com/duskren/ytrd/internal/services"
	"github.com/duskren/ytrd/internal/shared"
	"github.com/duskren/ytrd/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	catalog     services.Catalog
	debrid      services.Destination
	feed        services.Feed
	checkpoints *checkpoint.Store
	pacer       tasks.Pacer
	logger      *log.Logger
	output      io.Writer
	engine      *tasks.SyncEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Catalog     services.Catalog
	Debrid      services.Destination
	Feed        services.Feed
	Checkpoints *checkpoint.Store
	Pacer       tasks.Pacer
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Checkpoints == nil {
		opts.Checkpoints = checkpoint.NewStore(opts.Config.Sync.CheckpointDir)
	}
	if opts.Pacer == nil {
		opts.Pacer = tasks.NewPacer(opts.Config.Pacing)
	}

	r := &Runner{
		config:      opts.Config,
		catalog:     opts.Catalog,
		debrid:      opts.Debrid,
		feed:        opts.Feed,
		checkpoints: opts.Checkpoints,
		pacer:       opts.Pacer,
		logger:      opts.Logger,
		output:      opts.Output,
	}
	r.rebuildEngine()

	return r
}

// rebuildEngine constructs a fresh engine from the runner's current
// services. Called at construction and after a per-invocation service
// override (such as the shows command's feed flag).
func (r *Runner) rebuildEngine() {
	r.engine = tasks.NewSyncEngine(r.catalog, r.debrid, r.feed, tasks.EngineOpts{
		Checkpoints: r.checkpoints,
		Pacer:       r.pacer,
		Logger:      r.logger,
	})
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, statusCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireDebrid fails fast before a sync action touches the network.
func (r *Runner) requireDebrid() error {
	if r.debrid == nil {
		return fmt.Errorf("%w: REAL_DEBRID_API_TOKEN not set", shared.ErrMissingCredentials)
	}
	return nil
}

// startProgress spawns the goroutine that renders engine progress lines.
// The returned stop function closes the channel and waits for the final
// line to be written before the summary goes out.
func (r *Runner) startProgress() (chan tasks.ProgressUpdate, func()) {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progressCh {
			switch update.Phase {
			case tasks.LoadIndex, tasks.FetchFeed:
				r.writePlain("%s\n", update.Message)
			case tasks.FetchPage:
				r.writePlain("%s\n", update.Message)
			case tasks.PageDone, tasks.SaveCheckpoint:
				r.writePlain("  %s\n", update.Message)
			case tasks.PageFailed:
				r.writePlain("  ! %s\n", update.Message)
			case tasks.ItemAdded:
				r.writePlain("  + %s\n", update.Message)
			}
		}
	}()

	return progressCh, func() {
		close(progressCh)
		wg.Wait()
	}
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
