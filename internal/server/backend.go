package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// StatusError is a backend failure with the status code and detail message the HTTP layer returns.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string { return e.Detail }

var (
	ErrDuplicateUser  = &StatusError{http.StatusBadRequest, "Username or email already registered"}
	ErrBadCredentials = &StatusError{http.StatusUnauthorized, "Incorrect username or password"}
	ErrAlreadyLiked   = &StatusError{http.StatusBadRequest, "Plant already liked"}
	ErrNotLiked       = &StatusError{http.StatusBadRequest, "Plant not liked yet"}
	ErrNotOwner       = &StatusError{http.StatusForbidden, "Only plant owner can view likes"}
	ErrUnknownUser    = &StatusError{http.StatusUnauthorized, "User not found"}
	ErrInvalidToken   = &StatusError{http.StatusUnauthorized, "Invalid authentication credentials"}
	ErrMissingBearer  = &StatusError{http.StatusForbidden, "Not authenticated"}
	ErrPlantNotFound  = &StatusError{http.StatusNotFound, "Plant not found"}

	errEmptyJWTSecret = fmt.Errorf("%w: jwt secret is empty", shared.ErrInvalidConfig)
	errBcryptCost     = fmt.Errorf("%w: bcrypt cost out of range", shared.ErrInvalidConfig)
)

// DefaultSampleImages are offered by GET /sample-images.
var DefaultSampleImages = []string{
	"https://images.pexels.com/photos/3076899/pexels-photo-3076899.jpeg",
	"https://images.pexels.com/photos/1005058/pexels-photo-1005058.jpeg",
	"https://images.pexels.com/photos/2132227/pexels-photo-2132227.jpeg",
	"https://images.pexels.com/photos/85773/pexels-photo-85773.jpeg",
	"https://images.pexels.com/photos/931177/pexels-photo-931177.jpeg",
}

// Options configures a [Backend].
type Options struct {
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
	SampleImages []string
	Logger       *log.Logger
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type user struct {
	id           string
	username     string
	email        string
	passwordHash []byte
	createdAt    time.Time
}

type plant struct {
	id          string
	name        string
	description string
	price       float64
	photoURL    string
	ownerID     string
	ownerName   string
	likedBy     []string
	createdAt   time.Time
}

// Backend is an in-memory plant exchange. All methods are safe for concurrent use.
type Backend struct {
	mu     sync.RWMutex
	users  map[string]*user
	plants []*plant

	secret       []byte
	ttl          time.Duration
	cost         int
	sampleImages []string
	logger       *log.Logger
	now          func() time.Time
}

// NewBackend creates an empty backend.
func NewBackend(opts Options) (*Backend, error) {
	if opts.JWTSecret == "" {
		return nil, errEmptyJWTSecret
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 7 * 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		return nil, errBcryptCost
	}
	if opts.SampleImages == nil {
		opts.SampleImages = DefaultSampleImages
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Backend{
		users:        map[string]*user{},
		secret:       []byte(opts.JWTSecret),
		ttl:          opts.TokenTTL,
		cost:         opts.BcryptCost,
		sampleImages: slices.Clone(opts.SampleImages),
		logger:       opts.Logger,
		now:          opts.Now,
	}, nil
}

// Register creates a user and returns a signed token for it.
func (b *Backend) Register(username, email, password string) (models.Identity, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	b.mu.Lock()
	for _, u := range b.users {
		if u.username == username || u.email == email {
			b.mu.Unlock()
			return models.Identity{}, "", ErrDuplicateUser
		}
	}

	u := &user{
		id:           shared.GenerateID(),
		username:     username,
		email:        email,
		passwordHash: hash,
		createdAt:    b.now().UTC(),
	}
	b.users[u.id] = u
	b.mu.Unlock()

	token, err := b.issueToken(u.id)
	if err != nil {
		return models.Identity{}, "", err
	}

	b.logger.Debug("registered user", "username", username, "id", u.id)
	return u.identity(), token, nil
}

// Login checks a username and password and returns a fresh token.
func (b *Backend) Login(username, password string) (string, error) {
	b.mu.RLock()
	var found *user
	for _, u := range b.users {
		if u.username == username {
			found = u
			break
		}
	}
	b.mu.RUnlock()

	if found == nil {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(found.passwordHash, []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return b.issueToken(found.id)
}

// Identity looks up a user by id.
func (b *Backend) Identity(userID string) (models.Identity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	u, ok := b.users[userID]
	if !ok {
		return models.Identity{}, ErrUnknownUser
	}
	return u.identity(), nil
}

// CreatePlant adds a listing owned by userID.
func (b *Backend) CreatePlant(userID string, in models.NewPlant) (models.Plant, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	owner, ok := b.users[userID]
	if !ok {
		return models.Plant{}, ErrUnknownUser
	}

	p := &plant{
		id:          shared.GenerateID(),
		name:        in.Name,
		description: in.Description,
		price:       in.Price,
		photoURL:    in.PhotoURL,
		ownerID:     owner.id,
		ownerName:   owner.username,
		likedBy:     []string{},
		createdAt:   b.now().UTC(),
	}
	b.plants = append(b.plants, p)
	return p.view(""), nil
}

// Plants returns every listing in creation order, flagged with viewerID's like state.
func (b *Backend) Plants(viewerID string) []models.Plant {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Plant, 0, len(b.plants))
	for _, p := range b.plants {
		out = append(out, p.view(viewerID))
	}
	return out
}

// PlantsOwnedBy returns the listings of userID. The like flag is never set on this view.
func (b *Backend) PlantsOwnedBy(userID string) []models.Plant {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []models.Plant{}
	for _, p := range b.plants {
		if p.ownerID == userID {
			out = append(out, p.view(""))
		}
	}
	return out
}

// Like records userID as a liker of plantID.
func (b *Backend) Like(userID, plantID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.findPlant(plantID)
	if err != nil {
		return err
	}
	if slices.Contains(p.likedBy, userID) {
		return ErrAlreadyLiked
	}
	p.likedBy = append(p.likedBy, userID)
	return nil
}

// Unlike removes userID from the likers of plantID.
func (b *Backend) Unlike(userID, plantID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.findPlant(plantID)
	if err != nil {
		return err
	}
	i := slices.Index(p.likedBy, userID)
	if i < 0 {
		return ErrNotLiked
	}
	p.likedBy = slices.Delete(p.likedBy, i, i+1)
	return nil
}

// Likes returns who liked plantID, in like order. Only the owner may ask.
func (b *Backend) Likes(userID, plantID string) (models.LikesSummary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, err := b.findPlant(plantID)
	if err != nil {
		return models.LikesSummary{}, err
	}
	if p.ownerID != userID {
		return models.LikesSummary{}, ErrNotOwner
	}

	likers := make([]models.Liker, 0, len(p.likedBy))
	for _, id := range p.likedBy {
		if u, ok := b.users[id]; ok {
			likers = append(likers, models.Liker{ID: models.ID(u.id), Username: u.username})
		}
	}

	return models.LikesSummary{
		PlantID:    models.ID(p.id),
		LikesCount: len(p.likedBy),
		LikedBy:    likers,
	}, nil
}

// SampleImages returns the suggested photo URLs.
func (b *Backend) SampleImages() []string {
	return slices.Clone(b.sampleImages)
}

// SeedDemo registers a demo account with a few listings, for local development.
func (b *Backend) SeedDemo(ctx context.Context) error {
	demo, _, err := b.Register("demo", "demo@example.com", "demo")
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	seeds := []models.NewPlant{
		{Name: "Monstera", Description: "Healthy cutting, rooted in water", Price: 12.5},
		{Name: "Pothos", Description: "Golden pothos, trailing", Price: 8},
		{Name: "Snake Plant", Description: "Low light tolerant", Price: 15},
	}
	for i, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		seed.PhotoURL = b.sampleImages[i%len(b.sampleImages)]
		if _, err := b.CreatePlant(string(demo.ID), seed); err != nil {
			return fmt.Errorf("failed to seed plant: %w", err)
		}
	}

	b.logger.Info("seeded demo data", "username", "demo", "plants", len(seeds))
	return nil
}

func (b *Backend) findPlant(id string) (*plant, error) {
	for _, p := range b.plants {
		if p.id == id {
			return p, nil
		}
	}
	return nil, ErrPlantNotFound
}

func (u *user) identity() models.Identity {
	return models.Identity{
		ID:        models.ID(u.id),
		Username:  u.username,
		Email:     u.email,
		CreatedAt: models.Timestamp{Time: u.createdAt},
	}
}

func (p *plant) view(viewerID string) models.Plant {
	likedBy := make([]models.ID, len(p.likedBy))
	for i, id := range p.likedBy {
		likedBy[i] = models.ID(id)
	}

	return models.Plant{
		ID:            models.ID(p.id),
		Name:          p.name,
		Description:   p.description,
		Price:         p.price,
		PhotoURL:      p.photoURL,
		OwnerID:       models.ID(p.ownerID),
		OwnerUsername: p.ownerName,
		LikesCount:    len(p.likedBy),
		LikedBy:       likedBy,
		CreatedAt:     models.Timestamp{Time: p.createdAt},
		LikedByUser:   viewerID != "" && slices.Contains(p.likedBy, viewerID),
	}
}
