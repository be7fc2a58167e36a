package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenSetsConnParams(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "matchlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var fk, busy int
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&busy))
	require.Equal(t, 1, fk)
	require.Equal(t, 5000, busy)
}

func TestWithTxCommitsOrRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "matchlog.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	insert := func(key string) func(*sql.Tx) error {
		return func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO blobs(key, value) VALUES(?, '[]')`, key)
			return err
		}
	}
	require.NoError(t, WithTx(ctx, db, insert("kept")))

	abort := errors.New("abort")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		require.NoError(t, insert("dropped")(tx))
		return abort
	})
	require.ErrorIs(t, err, abort)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, WithTx(canceled, db, insert("late")), context.Canceled)

	var keys []string
	rows, err := db.QueryContext(ctx, `SELECT key FROM blobs ORDER BY key`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		keys = append(keys, k)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []string{"kept"}, keys)
}

func TestStamp(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CEST", 2*60*60)
	got := Stamp(time.Date(2026, time.October, 17, 14, 30, 5, 999_000_000, loc))
	require.Equal(t, time.Date(2026, time.October, 17, 12, 30, 5, 0, time.UTC), got)
	require.Equal(t, time.UTC, got.Location())
}
