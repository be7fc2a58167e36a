package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("MATCHLOG_CONFIG", "")
	for _, k := range []string{"MATCHLOG_STORAGE_DRIVER", "MATCHLOG_LOG_LEVEL", "MATCHLOG_APP_NAME"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "matchlog", cfg.App.Name)
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, filepath.Join(dir, "data", "matchlog", "matchlog.db"), cfg.Storage.Path)
	require.Equal(t, DefaultCurrentKey, cfg.Storage.CurrentKey)
	require.Equal(t, DefaultLegacyKey, cfg.Storage.LegacyKey)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("MATCHLOG_STORAGE_DRIVER", "badger")
	t.Setenv("MATCHLOG_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "badger", cfg.Storage.Driver)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MATCHLOG_APP_NAME=Tennis Log\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MATCHLOG_APP_NAME") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Tennis Log", cfg.App.Name)
}

func TestSaveThenLoad(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom", "matchlog.toml")
	t.Setenv("MATCHLOG_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Storage.Driver = "file"
	cfg.Storage.Path = filepath.Join(dir, "blobs")
	cfg.Log.Format = "json"
	require.NoError(t, Save(cfg))
	require.FileExists(t, path)

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
