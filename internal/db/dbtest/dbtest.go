// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/db"
)

// DSN keeps foreign keys on so the schema behaves like production.
const DSN = ":memory:?_pragma=foreign_keys(1)"

// New returns a fresh, fully migrated database closed at test cleanup.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}
