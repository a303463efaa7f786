// package services defines interface PlantAPI for interacting with the plant exchange backend
package services

import (
	"context"

	"github.com/desertthunder/plantx/internal/models"
)

// PlantAPI defines the operations the client performs against the backend.
type PlantAPI interface {
	// Register creates an account and returns its access token.
	Register(ctx context.Context, creds models.Credentials) (string, error)

	// Login exchanges a username and password for an access token.
	Login(ctx context.Context, username, password string) (string, error)

	// Me resolves the identity behind token.
	Me(ctx context.Context, token string) (*models.Identity, error)

	// Feed returns every listing, flagged with the caller's like state.
	Feed(ctx context.Context) ([]models.Plant, error)

	// Like and Unlike are not idempotent; the backend rejects a repeated action.
	Like(ctx context.Context, plantID models.ID) error
	Unlike(ctx context.Context, plantID models.ID) error

	// CreatePlant posts a new listing owned by the caller.
	CreatePlant(ctx context.Context, plant models.NewPlant) (*models.Plant, error)

	// MyPlants returns the caller's own listings.
	MyPlants(ctx context.Context) ([]models.Plant, error)

	// Likers returns who liked one of the caller's listings.
	Likers(ctx context.Context, plantID models.ID) ([]models.Liker, error)

	// SampleImages returns photo URLs offered as suggestions on the creation form.
	SampleImages(ctx context.Context) ([]string, error)
}

var _ PlantAPI = (*PlantService)(nil)
