package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("credential not found")

// CredentialRepository stores opaque credential values by key.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Get returns the value stored under key, or [ErrNotFound].
func (r *CredentialRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query credential: %w", err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *CredentialRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting a missing key is not an error.
func (r *CredentialRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM credentials WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

// TokenStore persists a single token under a fixed key.
type TokenStore struct {
	repo *CredentialRepository
	key  string
}

// NewTokenStore creates a [TokenStore] for key, defaulting to "token".
func NewTokenStore(repo *CredentialRepository, key string) *TokenStore {
	if key == "" {
		key = "token"
	}
	return &TokenStore{repo: repo, key: key}
}

// Load returns the persisted token, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return token, err
}

// Save persists token.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, s.key, token)
}

// Clear removes the persisted token.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}
