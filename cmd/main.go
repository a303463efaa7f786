package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/plantx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger, ConfigPath: "config.toml"})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "plantx",
		Usage:   "Browse, list and like plants on the plant exchange",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Backend base URL including the /api prefix (overrides config and PLANTX_BASE_URL)",
			},
		},
		Before:   r.Before,
		After:    r.After,
		Commands: r.register(),
	}
}
