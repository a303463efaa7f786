package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/plantx/internal/server"
	"github.com/urfave/cli/v3"
)

// DevServer serves the in-memory reference backend until interrupted.
func (r *Runner) DevServer(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port != 0 {
		cfg.Port = port
	}

	backend, err := server.NewBackend(server.Options{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL(),
		Logger:    r.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create backend: %w", err)
	}

	if cmd.Bool("seed") {
		if err := backend.SeedDemo(ctx); err != nil {
			return fmt.Errorf("failed to seed backend: %w", err)
		}
		r.logger.Info("seeded demo user", "username", "demo")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("serving reference backend", "addr", cfg.Addr(), "base_url", fmt.Sprintf("http://%s/api", cfg.Addr()))
	return server.ListenAndServe(ctx, cfg.Addr(), backend.Handler(), r.logger)
}
