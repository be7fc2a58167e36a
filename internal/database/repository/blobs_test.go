package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/matchlog/internal/database"
	"github.com/jask/matchlog/internal/database/repository"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	require.NoError(t, database.RunMigrations(dbPath), "migrations are idempotent")
	db, err := database.Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBlobRepo(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openDB(t)
	repo := repository.NewBlobRepo(db)

	_, ok, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Put(ctx, "k", []byte(`[1]`)))
	require.NoError(t, repo.Put(ctx, "k", []byte(`[2]`)))
	require.NoError(t, repo.Put(ctx, "a", nil))

	v, ok, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[2]`, string(v))

	v, ok, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, v)

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blobs WHERE updated_at IS NOT NULL`).Scan(&rows))
	require.Equal(t, 2, rows)

	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"), "deleting a missing key is not an error")
	_, ok, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewBlobRepo(openDB(t))
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Put(ctx, k, []byte(k)))
	}

	require.NoError(t, repo.DeleteAll(ctx, "a", "c", "missing"))
	for k, want := range map[string]bool{"a": false, "b": true, "c": false} {
		_, ok, err := repo.Get(ctx, k)
		require.NoError(t, err)
		require.Equal(t, want, ok, k)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openDB(t)

	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO blobs(key, value) VALUES('x', 'y')`); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	_, ok, err := repository.NewBlobRepo(db).Get(ctx, "x")
	require.NoError(t, err)
	require.False(t, ok)
}
