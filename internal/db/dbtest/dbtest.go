// Package dbtest opens a real PostgreSQL database for integration tests.
// Tests using it are skipped unless TEST_DSN points at a reachable server.
// Every Open truncates the schema, so run them with -p 1:
//
//	TEST_DSN=postgres://... go test -tags integration -p 1 ./...
package dbtest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"ptslot/internal/auth"
	"ptslot/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Open connects to TEST_DSN, applies migrations and empties every table.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("TEST_DSN not set")
	}

	conn, err := db.Connect(dsn)
	if err != nil {
		t.Skipf("cannot connect to test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(conn, migrationsDir()))

	_, err = conn.Exec(`TRUNCATE bookings, session_packs, trainer_holidays, trainer_settings, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return conn
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// CreateUser inserts a member and returns its id.
func CreateUser(t *testing.T, conn *sqlx.DB, email, name string) int {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	var id int
	err = conn.QueryRow(
		`INSERT INTO users (email, name, password_hash, role) VALUES ($1, $2, $3, 'member') RETURNING id`,
		email, name, hash,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
