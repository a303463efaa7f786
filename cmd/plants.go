package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/plantx/internal/formatter"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
	"github.com/desertthunder/plantx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlantsList prints the feed in the requested format.
func (r *Runner) PlantsList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if err := r.requireLogin(ctx); err != nil {
		return err
	}

	feed := tasks.NewFeed(r.plants, r.session, r.logger)
	if err := feed.Load(ctx); err != nil {
		return err
	}

	return r.render(cmd, format, "Plants", feed.Plants())
}

// PlantsLike likes a listing the user does not own.
func (r *Runner) PlantsLike(ctx context.Context, cmd *cli.Command) error {
	return r.mutate(ctx, cmd, "♥ Liked", (*tasks.Feed).Like)
}

// PlantsUnlike removes the user's like from a listing.
func (r *Runner) PlantsUnlike(ctx context.Context, cmd *cli.Command) error {
	return r.mutate(ctx, cmd, "♡ Unliked", (*tasks.Feed).Unlike)
}

func (r *Runner) mutate(ctx context.Context, cmd *cli.Command, done string, fn func(*tasks.Feed, context.Context, models.ID) error) error {
	id := models.ID(strings.TrimSpace(cmd.StringArg("id")))
	if id == "" {
		return fmt.Errorf("%w: plant id", shared.ErrMissingArgument)
	}
	if err := r.requireLogin(ctx); err != nil {
		return err
	}

	feed := tasks.NewFeed(r.plants, r.session, r.logger)
	if err := feed.Load(ctx); err != nil {
		return err
	}
	if err := fn(feed, ctx, id); err != nil {
		return err
	}

	plant, ok := feed.Find(id)
	if !ok {
		return r.writePlain("%s %s\n", done, id)
	}
	return r.writePlain("%s %s (%d likes)\n", done, plant.Name, plant.LikesCount)
}

// PlantsAdd creates a listing from flags, optionally using a sample photo.
func (r *Runner) PlantsAdd(ctx context.Context, cmd *cli.Command) error {
	photoURL, sample := cmd.String("photo-url"), int(cmd.Int("sample"))
	if photoURL == "" && sample == 0 {
		return fmt.Errorf("%w: either --photo-url or --sample must be provided", shared.ErrMissingArgument)
	}
	if photoURL != "" && sample != 0 {
		return fmt.Errorf("%w: cannot specify both --photo-url and --sample", shared.ErrInvalidArgument)
	}
	if err := r.requireLogin(ctx); err != nil {
		return err
	}

	form := tasks.NewListingForm(r.plants, r.logger)
	form.Set(tasks.FieldName, cmd.String("name"))
	form.Set(tasks.FieldDescription, cmd.String("description"))
	form.Set(tasks.FieldPrice, cmd.String("price"))

	if sample != 0 {
		if err := form.LoadSamples(ctx); err != nil {
			return err
		}
		if err := form.SelectSample(sample - 1); err != nil {
			return fmt.Errorf("%w: sample %d of %d", shared.ErrInvalidArgument, sample, len(form.Samples()))
		}
	} else {
		form.Set(tasks.FieldPhotoURL, photoURL)
	}

	plant, err := form.Submit(ctx)
	if err != nil {
		if msg := form.Message(); msg != "" {
			r.writePlain("✗ %s\n", msg)
		}
		return err
	}

	return r.writePlain("✓ Listed %s for %s (id %s)\n", plant.Name, plant.FormatPrice(), plant.ID)
}

// PlantsMine prints the user's listings once every likers fetch has completed.
func (r *Runner) PlantsMine(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if err := r.requireLogin(ctx); err != nil {
		return err
	}

	owned := tasks.NewOwned(r.plants, r.config.API.LikesConcurrency, r.logger)
	_, results, err := owned.Load(ctx)
	if err != nil {
		return err
	}

	for res := range results {
		if res.Err != nil {
			r.logger.Warn("likers unavailable", "plant", res.PlantID, "error", res.Err)
		}
	}

	return r.render(cmd, format, "My plants", owned.Plants())
}

// PlantsSamples prints the numbered sample photos accepted by "plants add --sample".
func (r *Runner) PlantsSamples(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(ctx); err != nil {
		return err
	}

	form := tasks.NewListingForm(r.plants, r.logger)
	if err := form.LoadSamples(ctx); err != nil {
		return err
	}

	samples := form.Samples()
	if len(samples) == 0 {
		return fmt.Errorf("%w: no sample photos available", shared.ErrServiceUnavailable)
	}

	r.writePlainHeader("Sample photos")
	for i, url := range samples {
		r.writePlain("%d. %s\n", i+1, url)
	}
	return nil
}

func (r *Runner) render(cmd *cli.Command, format formatter.Format, title string, plants []models.Plant) error {
	viewer := r.session.Identity()
	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteFile(path, format, title, plants, viewer); err != nil {
			return err
		}
		r.logger.Info("listings written", "path", path, "count", len(plants))
		return r.writePlain("✓ Wrote %d listings to %s\n", len(plants), path)
	}

	if format == formatter.Text {
		r.writePlainHeader(title)
	}
	return formatter.Write(r.output, format, title, plants, viewer)
}
