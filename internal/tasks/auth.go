package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/services"
	"github.com/desertthunder/plantx/internal/shared"
)

// AuthForm is the state of the login and registration screen.
type AuthForm struct {
	mu       sync.Mutex
	mode     AuthMode
	username string
	email    string
	password string
	message  string

	client  AuthClient
	session Session
	logger  *log.Logger
}

// NewAuthForm creates a form in login mode.
func NewAuthForm(client AuthClient, session Session, logger *log.Logger) *AuthForm {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &AuthForm{client: client, session: session, logger: logger}
}

// Mode returns the current mode.
func (a *AuthForm) Mode() AuthMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Toggle switches between login and registration and clears the inline message.
func (a *AuthForm) Toggle() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mode == LoginMode {
		a.mode = RegisterMode
	} else {
		a.mode = LoginMode
	}
	a.message = ""
}

// Set updates one input.
func (a *AuthForm) Set(field AuthField, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch field {
	case AuthUsername:
		a.username = value
	case AuthEmail:
		a.email = value
	case AuthPassword:
		a.password = value
	}
}

// Message returns the inline error from the last submission.
func (a *AuthForm) Message() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.message
}

// Submit logs in or registers, then hands the issued token to the session.
//
// Failures are shown inline through [AuthForm.Message]. Whether the session ends up authenticated
// depends on its own verification of the token.
func (a *AuthForm) Submit(ctx context.Context) error {
	a.mu.Lock()
	mode := a.mode
	creds := models.Credentials{
		Username: strings.TrimSpace(a.username),
		Email:    strings.TrimSpace(a.email),
		Password: a.password,
	}
	a.message = ""
	a.mu.Unlock()

	// Login never sends the email, so a leftover value from register mode must not block it.
	if mode == LoginMode {
		creds.Email = ""
	}
	if msg := validationMessage(creds); msg != "" {
		return a.fail(fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg), msg)
	}
	if mode == RegisterMode && creds.Email == "" {
		return a.fail(fmt.Errorf("%w: email", shared.ErrMissingArgument), "email is required")
	}

	var (
		token string
		err   error
	)
	if mode == RegisterMode {
		token, err = a.client.Register(ctx, creds)
	} else {
		token, err = a.client.Login(ctx, creds.Username, creds.Password)
	}
	if err != nil {
		a.logger.Warn(mode.String()+" failed", "username", creds.Username, "error", err)
		return a.fail(fmt.Errorf("%w: %w", shared.ErrAuthFailed, err), services.ErrorMessage(err))
	}

	if err := a.session.Login(ctx, token); err != nil {
		a.logger.Error("failed to store credential", "error", err)
		return a.fail(err, services.DefaultErrorMessage)
	}

	a.mu.Lock()
	a.password = ""
	a.mu.Unlock()
	return nil
}

func (a *AuthForm) fail(err error, msg string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.message = msg
	return err
}
