package testutils

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/horror-bot/internal/sqlite"
)

// CreateTestDB opens a migrated SQLite database in a temp dir. The database
// is closed when the test finishes.
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "horror_test.db"))
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() { _ = db.Close() })

	return db
}

// SeedGame inserts a bare game row so child rows satisfy their foreign keys
func SeedGame(t *testing.T, db *sql.DB, gameID string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO games (id, scenario_id, creator_id, created_at) VALUES (?, ?, ?, ?)`,
		gameID, "asylum", "creator", time.Now().UnixNano())
	require.NoError(t, err, "failed to seed game %s", gameID)
}
