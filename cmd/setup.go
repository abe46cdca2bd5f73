package main

import (
	"context"
	"fmt"
	"os"

	"github.com/duskren/ytrd/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config file and the checkpoint directory.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
	} else {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.logger.Info("config file created", "path", configPath)
	}

	if dir := r.config.Sync.CheckpointDir; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create checkpoint directory: %w", err)
		}
	}

	r.writePlain("✓ Configuration ready at %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set REAL_DEBRID_API_TOKEN in the environment or a .env file\n")
	r.writePlain("2. Run 'ytrd sync bulk' to start walking the catalog\n")

	return nil
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and checkpoint directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
