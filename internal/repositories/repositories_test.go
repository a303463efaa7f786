package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/plantx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestCredentialRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Get Missing Key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := NewCredentialRepository(db).Get(ctx, "token")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Set(ctx, "token", "tok123"); err != nil {
			t.Fatalf("failed to set credential: %v", err)
		}

		got, err := repo.Get(ctx, "token")
		if err != nil {
			t.Fatalf("failed to get credential: %v", err)
		}
		if got != "tok123" {
			t.Errorf("expected tok123, got %s", got)
		}
	})

	t.Run("Set Replaces Value", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		for _, v := range []string{"first", "second"} {
			if err := repo.Set(ctx, "token", v); err != nil {
				t.Fatalf("failed to set credential: %v", err)
			}
		}

		got, _ := repo.Get(ctx, "token")
		if got != "second" {
			t.Errorf("expected second, got %s", got)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&count); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single row, got %d", count)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		repo.Set(ctx, "token", "tok123")

		if err := repo.Delete(ctx, "token"); err != nil {
			t.Fatalf("failed to delete credential: %v", err)
		}
		if _, err := repo.Get(ctx, "token"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}

		if err := repo.Delete(ctx, "token"); err != nil {
			t.Errorf("deleting a missing key should not fail, got %v", err)
		}
	})

	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		db.Close()

		repo := NewCredentialRepository(db)
		if _, err := repo.Get(ctx, "token"); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("expected query error, got %v", err)
		}
		if err := repo.Set(ctx, "token", "x"); err == nil {
			t.Error("expected error setting on closed database")
		}
	})
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		token, err := NewTokenStore(NewCredentialRepository(db), "").Load(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "" {
			t.Errorf("expected empty token, got %s", token)
		}
	})

	t.Run("Save Load Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		store := NewTokenStore(repo, "session")

		if err := store.Save(ctx, "tok123"); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		if v, _ := repo.Get(ctx, "session"); v != "tok123" {
			t.Errorf("expected token under configured key, got %q", v)
		}

		token, _ := store.Load(ctx)
		if token != "tok123" {
			t.Errorf("expected tok123, got %s", token)
		}

		if err := store.Clear(ctx); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		token, _ = store.Load(ctx)
		if token != "" {
			t.Errorf("expected empty token after clear, got %s", token)
		}
	})
}
