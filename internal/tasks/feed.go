package tasks

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
)

// Feed is the state of the discover screen.
type Feed struct {
	mu      sync.Mutex
	plants  []models.Plant
	loading bool

	client  FeedClient
	session IdentitySource
	logger  *log.Logger
}

// NewFeed creates an empty feed. Call [Feed.Load] to populate it.
func NewFeed(client FeedClient, session IdentitySource, logger *log.Logger) *Feed {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Feed{client: client, session: session, logger: logger}
}

// Load fetches every listing and replaces local state wholesale.
//
// On failure the previous listings are kept and the loading flag is cleared.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	plants, err := f.client.Feed(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false

	if err != nil {
		f.logger.Warn("failed to fetch feed", "error", err)
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	f.plants = plants
	f.logger.Debug("feed loaded", "count", len(plants))
	return nil
}

// Plants returns a copy of the current listings.
func (f *Feed) Plants() []models.Plant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.plants)
}

// Loading reports whether a fetch is in flight.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Find looks up a listing in the current state.
func (f *Feed) Find(id models.ID) (models.Plant, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.plants {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plant{}, false
}

// Like likes a listing, then refetches the feed.
func (f *Feed) Like(ctx context.Context, id models.ID) error {
	return f.mutate(ctx, id, "like", f.client.Like)
}

// Unlike removes a like, then refetches the feed.
func (f *Feed) Unlike(ctx context.Context, id models.ID) error {
	return f.mutate(ctx, id, "unlike", f.client.Unlike)
}

// Toggle likes or unlikes a listing according to its reported like state.
func (f *Feed) Toggle(ctx context.Context, id models.ID) error {
	plant, ok := f.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrPlantNotFound, id)
	}

	if plant.LikedByUser {
		return f.Unlike(ctx, id)
	}
	return f.Like(ctx, id)
}

// mutate issues a like or unlike. Local state is left untouched on failure and no refetch happens.
func (f *Feed) mutate(ctx context.Context, id models.ID, action string, fn func(context.Context, models.ID) error) error {
	if plant, ok := f.Find(id); ok && f.session != nil {
		if identity := f.session.Identity(); identity != nil && plant.OwnedBy(*identity) {
			return shared.ErrOwnListing
		}
	}

	if err := fn(ctx, id); err != nil {
		f.logger.Warn("failed to "+action+" plant", "plant_id", id, "error", err)
		return fmt.Errorf("failed to %s plant: %w", action, err)
	}

	return f.Load(ctx)
}
