package main

import (
	"context"
	"errors"

	"github.com/duskren/ytrd/internal/shared"
	"github.com/duskren/ytrd/internal/ui"
	"github.com/urfave/cli/v3"
)

// Status reports checkpoint progress without touching the network.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	complete := r.checkpoints.Complete()

	state, err := r.checkpoints.Load()
	if errors.Is(err, shared.ErrNoCheckpoint) {
		return r.writePlain("%s", ui.RenderStatus(nil, complete))
	}
	if err != nil {
		return err
	}

	return r.writePlain("%s", ui.RenderStatus(&state, complete))
}

func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show checkpoint progress for the bulk catalog walk",
		Action: r.Status,
	}
}
