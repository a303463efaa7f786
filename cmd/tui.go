package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/plantx/internal/shared"
	"github.com/desertthunder/plantx/internal/tasks"
	"github.com/desertthunder/plantx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	if err := r.connect(ctx); err != nil {
		return err
	}

	deps := ui.Deps{
		Session: r.session,
		Auth:    tasks.NewAuthForm(r.plants, r.session, shared.WithLogger(r.logger, "view", "auth")),
		Feed:    tasks.NewFeed(r.plants, r.session, shared.WithLogger(r.logger, "view", "discover")),
		Form:    tasks.NewListingForm(r.plants, shared.WithLogger(r.logger, "view", "add")),
		Owned:   tasks.NewOwned(r.plants, r.config.API.LikesConcurrency, shared.WithLogger(r.logger, "view", "mine")),
		Logger:  r.logger,
	}

	if err := ui.Run(ctx, deps); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
