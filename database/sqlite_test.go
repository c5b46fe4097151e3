package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite_CreatesSchema(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"mentors", "students", "appointments", "payments"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %q missing", table)
	}
}

func TestOpenSQLite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	for i := 0; i < 3; i++ {
		db, err := OpenSQLite(path)
		require.NoError(t, err, "open #%d", i)
		require.NoError(t, db.Close())
	}
}

func TestOpenSQLite_ForeignKeysEnforced(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()

	var on int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&on))
	assert.Equal(t, 1, on)

	_, err = db.Exec(`INSERT INTO appointments
		(id, mentor_id, student_id, date, start_time, end_time, start_minute, end_minute, duration, created_at)
		VALUES ('a1', 'ghost', 'ghost', '2024-05-01', '10:00', '10:30', 600, 630, 30, CURRENT_TIMESTAMP)`)
	assert.Error(t, err, "appointment without mentor must be rejected")
}
