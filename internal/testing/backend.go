package testing

import (
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/server"
	"golang.org/x/crypto/bcrypt"
)

// TestBackend is an in-memory backend served over httptest for integration tests
type TestBackend struct {
	*server.Backend
	Server *httptest.Server
	// BaseURL includes the /api prefix
	BaseURL string
}

// NewTestBackend starts a reference backend that is closed when the test ends
func NewTestBackend(t *testing.T) *TestBackend {
	t.Helper()

	b, err := server.NewBackend(server.Options{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}

	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)

	return &TestBackend{Backend: b, Server: srv, BaseURL: srv.URL + "/api"}
}

// MustRegister creates a user and returns its identity and token
func (tb *TestBackend) MustRegister(t *testing.T, username string) (models.Identity, string) {
	t.Helper()

	identity, token, err := tb.Register(username, username+"@example.com", "secret")
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return identity, token
}

// MustCreatePlant adds a listing owned by owner
func (tb *TestBackend) MustCreatePlant(t *testing.T, owner models.Identity, name string, price float64) models.Plant {
	t.Helper()

	p, err := tb.CreatePlant(string(owner.ID), models.NewPlant{
		Name:        name,
		Description: name + " for trade",
		Price:       price,
		PhotoURL:    server.DefaultSampleImages[0],
	})
	if err != nil {
		t.Fatalf("failed to create plant %s: %v", name, err)
	}
	return p
}
