package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Persister keeps one opaque credential across runs.
type Persister interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Verifier resolves the identity behind a credential.
type Verifier interface {
	Me(ctx context.Context, token string) (*models.Identity, error)
}

// Store is the client session. The zero value is not usable; see [NewStore].
type Store struct {
	mu         sync.RWMutex
	credential string
	identity   *models.Identity

	persister Persister
	verifier  Verifier
	logger    *log.Logger
}

var _ oauth2.TokenSource = (*Store)(nil)

// NewStore creates an empty session. The verifier may be attached later with [Store.SetVerifier]
// because the API client usually depends on the store as its token source.
func NewStore(persister Persister, verifier Verifier, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Store{persister: persister, verifier: verifier, logger: logger}
}

// SetVerifier attaches the identity verifier.
func (s *Store) SetVerifier(v Verifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifier = v
}

// Restore loads the persisted credential, if any, makes it current and verifies it.
func (s *Store) Restore(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	token, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}
	if token == "" {
		return nil
	}

	if s.setCredential(token) {
		s.verify(ctx, token)
	}
	return nil
}

// Login persists token and makes it current. Verification runs only when token differs from the
// current credential.
func (s *Store) Login(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty credential", shared.ErrAuthFailed)
	}

	if s.persister != nil {
		if err := s.persister.Save(ctx, token); err != nil {
			return fmt.Errorf("failed to persist credential: %w", err)
		}
	}

	if s.setCredential(token) {
		s.verify(ctx, token)
	}
	return nil
}

// Logout clears the persisted credential, the current credential and the identity.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.credential = ""
	s.identity = nil
	s.mu.Unlock()

	if s.persister == nil {
		return nil
	}
	if err := s.persister.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// Identity returns a copy of the resolved identity, or nil when unresolved.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// Credential returns the current credential, or "" when absent.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Authenticated reports whether an identity has been resolved for the current credential.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential != "" && s.identity != nil
}

// Token implements [oauth2.TokenSource].
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.credential == "" {
		return nil, shared.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: s.credential, TokenType: "Bearer"}, nil
}

// setCredential swaps in token and drops any identity derived from a previous credential.
// It reports whether the credential changed.
func (s *Store) setCredential(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.credential == token {
		return false
	}
	s.credential = token
	s.identity = nil
	return true
}

// verify resolves the identity for token. The result is applied only if token is still current.
func (s *Store) verify(ctx context.Context, token string) {
	s.mu.RLock()
	verifier := s.verifier
	s.mu.RUnlock()

	if verifier == nil {
		s.logger.Warn("no verifier configured, identity left unresolved")
		return
	}

	identity, err := verifier.Me(ctx, token)

	s.mu.Lock()
	if s.credential != token {
		s.mu.Unlock()
		s.logger.Debug("discarding verification for replaced credential")
		return
	}

	if err != nil {
		s.credential = ""
		s.identity = nil
		s.mu.Unlock()

		s.logger.Warn("credential verification failed, session cleared", "error", err)
		if s.persister != nil {
			if err := s.persister.Clear(ctx); err != nil {
				s.logger.Error("failed to clear persisted credential", "error", err)
			}
		}
		return
	}

	s.identity = identity
	s.mu.Unlock()
	s.logger.Debug("session verified", "username", identity.Username)
}

// ExpiresAt decodes the exp claim of a JWT credential without verifying its signature.
//
// Opaque (non-JWT) credentials report an error; a JWT without exp reports the zero time.
func ExpiresAt(credential string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: credential is not a JWT: %v", shared.ErrInvalidInput, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
