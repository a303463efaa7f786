package tasks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
	"golang.org/x/sync/errgroup"
)

// Owned is the state of the owned-listings screen.
type Owned struct {
	mu         sync.Mutex
	plants     []models.Plant
	likers     map[models.ID][]models.Liker
	loading    bool
	generation int

	client      OwnedClient
	concurrency int
	logger      *log.Logger
}

// NewOwned creates an empty owned-listings view.
//
// concurrency bounds the likers fan-out; zero or less issues every request at once.
func NewOwned(client OwnedClient, concurrency int, logger *log.Logger) *Owned {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Owned{
		client:      client,
		concurrency: concurrency,
		likers:      map[models.ID][]models.Liker{},
		logger:      logger,
	}
}

// Load fetches the caller's listings, then fans out one likers fetch per listing.
//
// The returned channel yields each fetch as it completes, in no particular order, and is closed
// once all of them finish. It is buffered to the number of listings so fetches never block on a
// reader that has gone away. Each successful result is also merged into [Owned.Likers].
func (o *Owned) Load(ctx context.Context) ([]models.Plant, <-chan LikersResult, error) {
	o.mu.Lock()
	o.loading = true
	o.mu.Unlock()

	plants, err := o.client.MyPlants(ctx)
	if err != nil {
		o.mu.Lock()
		o.loading = false
		o.mu.Unlock()

		o.logger.Warn("failed to fetch owned plants", "error", err)
		return nil, nil, fmt.Errorf("failed to fetch owned plants: %w", err)
	}

	o.mu.Lock()
	o.generation++
	gen := o.generation
	o.plants = plants
	o.likers = make(map[models.ID][]models.Liker, len(plants))
	o.loading = false
	o.mu.Unlock()

	results := make(chan LikersResult, len(plants))
	go o.fanOut(ctx, gen, plants, results)

	return o.Plants(), results, nil
}

func (o *Owned) fanOut(ctx context.Context, gen int, plants []models.Plant, results chan<- LikersResult) {
	defer close(results)

	var g errgroup.Group
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}

	for _, p := range plants {
		id := p.ID
		g.Go(func() error {
			likers, err := o.client.Likers(ctx, id)
			if err != nil {
				o.logger.Warn("failed to fetch likers", "plant_id", id, "error", err)
			} else {
				o.merge(gen, id, likers)
			}
			results <- LikersResult{PlantID: id, Likers: likers, Err: err}
			return nil
		})
	}

	g.Wait()
}

// merge records likers for one listing unless a newer Load has replaced the view.
func (o *Owned) merge(gen int, id models.ID, likers []models.Liker) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		return
	}
	o.likers[id] = likers
}

// Plants returns the owned listings with any likers merged so far.
func (o *Owned) Plants() []models.Plant {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]models.Plant, len(o.plants))
	for i, p := range o.plants {
		p.Likers = o.likers[p.ID]
		out[i] = p
	}
	return out
}

// Likers returns the likers of one listing and whether its fetch has completed successfully.
func (o *Owned) Likers(id models.ID) ([]models.Liker, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	likers, ok := o.likers[id]
	return likers, ok
}

// Loading reports whether the owned listings fetch is in flight.
func (o *Owned) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}
