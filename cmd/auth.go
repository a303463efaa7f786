package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/plantx/internal/session"
	"github.com/desertthunder/plantx/internal/shared"
	"github.com/desertthunder/plantx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account and persists the issued token.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	return r.authenticate(ctx, cmd, tasks.RegisterMode)
}

// AuthLogin exchanges credentials for a token and persists it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	return r.authenticate(ctx, cmd, tasks.LoginMode)
}

func (r *Runner) authenticate(ctx context.Context, cmd *cli.Command, mode tasks.AuthMode) error {
	if err := r.connect(ctx); err != nil {
		return err
	}

	password := cmd.String("password")
	if password == "" {
		var err error
		if password, err = r.readPassword("Password: "); err != nil {
			return err
		}
	}

	form := tasks.NewAuthForm(r.plants, r.session, r.logger)
	if mode == tasks.RegisterMode {
		form.Toggle()
		form.Set(tasks.AuthEmail, cmd.String("email"))
	}
	form.Set(tasks.AuthUsername, cmd.String("username"))
	form.Set(tasks.AuthPassword, password)

	r.logger.Info("authenticating", "mode", mode, "username", cmd.String("username"))
	if err := form.Submit(ctx); err != nil {
		r.writePlain("✗ %s\n", form.Message())
		return err
	}

	identity := r.session.Identity()
	if identity == nil {
		return fmt.Errorf("%w: the issued token could not be verified", shared.ErrAuthFailed)
	}

	return r.writePlain("✓ Logged in as %s\n", identity.Username)
}

// AuthLogout clears the persisted token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(ctx); err != nil {
		return err
	}
	if err := r.session.Logout(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports the verified identity and when its token expires.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(ctx); err != nil {
		return err
	}

	identity := r.session.Identity()
	if identity == nil {
		return r.writePlain("✗ Not logged in\n")
	}

	r.writePlain("✓ Logged in as %s (id %s)\n", identity.Username, identity.ID)
	if identity.Email != "" {
		r.writePlain("Email: %s\n", identity.Email)
	}

	expires, err := session.ExpiresAt(r.session.Credential())
	if err != nil {
		r.logger.Warn("failed to read token expiry", "error", err)
		return nil
	}
	if !expires.IsZero() {
		r.writePlain("Token expires: %s\n", expires.Local().Format(time.RFC1123))
	}
	return nil
}
