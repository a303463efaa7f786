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

// ListingForm is the state of the creation screen.
type ListingForm struct {
	mu            sync.Mutex
	draft         models.PlantDraft
	samples       []string
	samplesLoaded bool
	success       bool
	message       string

	client ListingClient
	logger *log.Logger
}

// NewListingForm creates a form with an empty draft.
func NewListingForm(client ListingClient, logger *log.Logger) *ListingForm {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &ListingForm{client: client, logger: logger}
}

// Set updates one draft field and hides the success indicator.
func (l *ListingForm) Set(field Field, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch field {
	case FieldName:
		l.draft.Name = value
	case FieldDescription:
		l.draft.Description = value
	case FieldPrice:
		l.draft.Price = value
	case FieldPhotoURL:
		l.draft.PhotoURL = value
	}
	l.success = false
}

// Draft returns the current draft.
func (l *ListingForm) Draft() models.PlantDraft {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draft
}

// LoadSamples fetches the sample photo URLs. Once a fetch succeeds, later calls do nothing.
func (l *ListingForm) LoadSamples(ctx context.Context) error {
	l.mu.Lock()
	if l.samplesLoaded {
		l.mu.Unlock()
		return nil
	}
	l.mu.Unlock()

	images, err := l.client.SampleImages(ctx)
	if err != nil {
		l.logger.Warn("failed to fetch sample images", "error", err)
		return fmt.Errorf("failed to fetch sample images: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.samples = images
	l.samplesLoaded = true
	return nil
}

// Samples returns the fetched sample photo URLs.
func (l *ListingForm) Samples() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.samples)
}

// SelectSample overwrites the photo field with sample i, exactly as typing the URL would.
func (l *ListingForm) SelectSample(i int) error {
	l.mu.Lock()
	if i < 0 || i >= len(l.samples) {
		n := len(l.samples)
		l.mu.Unlock()
		return fmt.Errorf("%w: sample %d of %d", shared.ErrInvalidArgument, i, n)
	}
	url := l.samples[i]
	l.mu.Unlock()

	l.Set(FieldPhotoURL, url)
	return nil
}

// Submit coerces and validates the draft, then posts it.
//
// A success clears the draft and raises the success indicator. A failure keeps the draft. The
// form does not refetch any collection.
func (l *ListingForm) Submit(ctx context.Context) (*models.Plant, error) {
	l.mu.Lock()
	draft := l.draft
	l.success = false
	l.message = ""
	l.mu.Unlock()

	payload, err := draft.Coerce()
	if err != nil {
		return nil, l.reject(err.Error())
	}
	if msg := validationMessage(payload); msg != "" {
		return nil, l.reject(msg)
	}

	created, err := l.client.CreatePlant(ctx, payload)
	if err != nil {
		l.logger.Warn("failed to create plant", "name", payload.Name, "error", err)
		return nil, fmt.Errorf("failed to create plant: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = models.PlantDraft{}
	l.success = true
	l.logger.Info("plant created", "id", created.ID, "name", created.Name)
	return created, nil
}

func (l *ListingForm) reject(msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.message = msg
	return fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg)
}

// Success reports whether the last submission succeeded.
func (l *ListingForm) Success() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.success
}

// Message returns the inline validation message from the last submission, if any.
func (l *ListingForm) Message() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.message
}

// Reset discards the draft. Sample images stay loaded.
func (l *ListingForm) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = models.PlantDraft{}
	l.success = false
	l.message = ""
}
