// package tasks implements the screen state for the plant exchange client.
//
// Each view-model depends on the narrow slice of the API client it uses, so tests can swap in fakes.
package tasks

import (
	"context"
	"strings"

	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
)

// FeedClient lists and likes listings.
type FeedClient interface {
	Feed(ctx context.Context) ([]models.Plant, error)
	Like(ctx context.Context, plantID models.ID) error
	Unlike(ctx context.Context, plantID models.ID) error
}

// ListingClient creates listings and offers sample photos.
type ListingClient interface {
	CreatePlant(ctx context.Context, plant models.NewPlant) (*models.Plant, error)
	SampleImages(ctx context.Context) ([]string, error)
}

// OwnedClient reads the caller's listings and their likers.
type OwnedClient interface {
	MyPlants(ctx context.Context) ([]models.Plant, error)
	Likers(ctx context.Context, plantID models.ID) ([]models.Liker, error)
}

// AuthClient exchanges credentials for an access token.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, creds models.Credentials) (string, error)
}

// IdentitySource reports who is logged in.
type IdentitySource interface {
	Identity() *models.Identity
}

// Session accepts a freshly issued credential.
type Session interface {
	IdentitySource
	Login(ctx context.Context, token string) error
}

// CanLike reports whether identity may like plant. Owners never can, and neither can an unresolved identity.
func CanLike(plant models.Plant, identity *models.Identity) bool {
	if identity == nil {
		return false
	}
	return !plant.OwnedBy(*identity)
}

// validationMessage returns the user-facing text for a validation failure on v, or "" when v is valid.
func validationMessage(v any) string {
	err := shared.Validate(v)
	if err == nil {
		return ""
	}
	return strings.TrimPrefix(err.Error(), shared.ErrInvalidInput.Error()+": ")
}
