package shared

import (
	"database/sql"
	"testing"
)

func migratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestMigrations(t *testing.T) {
	t.Run("Embedded Files Pair Up", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}
		if len(migrations) == 0 || migrations[0].Version != 0 {
			t.Fatalf("expected the credentials migration first, got %+v", migrations)
		}
		if got := removeComments(migrations[0].Up); got == "" || got[0] == '-' {
			t.Errorf("expected comment-free statement, got %q", got)
		}
	})

	t.Run("Credentials Table Stores Token Rows", func(t *testing.T) {
		db := migratedDB(t)

		if _, err := db.Exec("INSERT INTO credentials (key, value) VALUES ('token', 'tok123')"); err != nil {
			t.Fatalf("failed to insert token: %v", err)
		}
		if _, err := db.Exec("INSERT INTO credentials (key, value) VALUES ('token', 'other')"); err == nil {
			t.Error("expected key to be unique")
		}

		var value string
		if err := db.QueryRow("SELECT value FROM credentials WHERE key = 'token'").Scan(&value); err != nil {
			t.Fatalf("failed to read token: %v", err)
		}
		if value != "tok123" {
			t.Errorf("expected tok123, got %q", value)
		}
	})

	t.Run("Rollback Then Reapply", func(t *testing.T) {
		db := migratedDB(t)
		if _, err := db.Exec("INSERT INTO credentials (key, value) VALUES ('token', 'tok123')"); err != nil {
			t.Fatalf("failed to insert token: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to roll back: %v", err)
		}
		if _, err := db.Exec("SELECT 1 FROM credentials"); err == nil {
			t.Fatal("expected credentials table to be dropped")
		}
		if err := RollbackMigration(db); err == nil {
			t.Error("expected error with no applied migrations")
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to reapply: %v", err)
		}
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&count); err != nil {
			t.Fatalf("failed to count credentials: %v", err)
		}
		if count != 0 {
			t.Errorf("expected a fresh table, got %d rows", count)
		}
	})

	t.Run("Second Run Applies Nothing", func(t *testing.T) {
		db := migratedDB(t)
		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to rerun migrations: %v", err)
		}

		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		migrations, _ := loadMigrations()
		if applied != len(migrations) {
			t.Errorf("expected %d applied, got %d", len(migrations), applied)
		}
	})
}
