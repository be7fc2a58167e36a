package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/matchlog/internal/apperr"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	file, err := Open(ctx, Config{Driver: DriverFile, Path: filepath.Join(dir, "files")})
	require.NoError(t, err)
	sqlite, err := Open(ctx, Config{Driver: DriverSQLite, Path: filepath.Join(dir, "db", "matchlog.db")})
	require.NoError(t, err)
	bdg, err := OpenBadger(BadgerConfig{InMemory: true, KeyPrefix: "matchlog:"})
	require.NoError(t, err)
	mem, err := Open(ctx, Config{Driver: DriverMemory})
	require.NoError(t, err)

	stores := map[string]Store{
		DriverMemory: mem,
		DriverFile:   file,
		DriverSQLite: sqlite,
		DriverBadger: bdg,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.Get(ctx, "tennis_matches_v2")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, s.Put(ctx, "tennis_matches_v2", []byte(`[{"id":"a"}]`)))
			require.NoError(t, s.Put(ctx, "tennis_matches_v1", []byte(`[]`)))
			require.NoError(t, s.Put(ctx, "tennis_matches_v2", []byte(`[{"id":"b"}]`)))

			v, ok, err := s.Get(ctx, "tennis_matches_v2")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, `[{"id":"b"}]`, string(v))

			require.NoError(t, s.Delete(ctx, "tennis_matches_v2"))
			require.NoError(t, s.Delete(ctx, "tennis_matches_v2"))
			_, ok, err = s.Get(ctx, "tennis_matches_v2")
			require.NoError(t, err)
			require.False(t, ok)

			v, ok, err = s.Get(ctx, "tennis_matches_v1")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, `[]`, string(v))
		})
	}
}

func TestCancelledContextIsStorageError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range openAll(t) {
		if name == DriverSQLite {
			continue
		}
		err := s.Put(ctx, "k", []byte("v"))
		require.ErrorIs(t, err, apperr.ErrStorage, name)
		require.ErrorIs(t, err, context.Canceled, name)
	}
}

func TestMemoryClosed(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	require.NoError(t, m.Close())
	_, _, err := m.Get(context.Background(), "k")
	require.ErrorIs(t, err, apperr.ErrStorage)
}

func TestFileStoreWriteFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "blocked.json.tmp"), 0o755))

	err = s.Put(context.Background(), "blocked", []byte("x"))
	require.ErrorIs(t, err, apperr.ErrStorage)
	_, ok, err := s.Get(context.Background(), "blocked")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{Driver: "floppy", Path: t.TempDir()})
	require.ErrorIs(t, err, apperr.ErrStorage)
	require.Contains(t, err.Error(), `unknown driver "floppy"`)

	_, err = Open(context.Background(), Config{Driver: DriverFile})
	require.ErrorIs(t, err, apperr.ErrStorage)

	_, err = NewFileStore("")
	require.ErrorIs(t, err, apperr.ErrStorage)
}

func TestOpenUnwritablePath(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	for _, driver := range []string{DriverFile, DriverSQLite} {
		_, err := Open(context.Background(), Config{Driver: driver, Path: filepath.Join(blocker, "sub", "matchlog.db")})
		require.ErrorIs(t, err, apperr.ErrStorage, driver)
	}

	_, err := OpenSQLite(context.Background(), t.TempDir())
	require.ErrorIs(t, err, apperr.ErrStorage)
}

func TestDeleteKeys(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, k := range []string{"a", "b", "c"} {
				require.NoError(t, s.Put(ctx, k, []byte(k)))
			}
			require.NoError(t, DeleteKeys(ctx, s, "a", "c", "missing"))
			for k, want := range map[string]bool{"a": false, "b": true, "c": false} {
				_, ok, err := s.Get(ctx, k)
				require.NoError(t, err)
				require.Equal(t, want, ok, k)
			}
		})
	}
}
