package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Log     LogConfig
}

// AppConfig holds naming used in export file names and the version banner.
type AppConfig struct {
	Name string
}

// StorageConfig selects the medium and the keys the collection lives under.
type StorageConfig struct {
	Driver     string
	Path       string
	CurrentKey string `mapstructure:"current_key"`
	LegacyKey  string `mapstructure:"legacy_key"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Default storage keys.
const (
	DefaultCurrentKey = "tennis_matches_v2"
	DefaultLegacyKey  = "tennis_matches_v1"
)

func dataHome() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share")
}

func configHome() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

// Path returns the config file location.
func Path() string {
	if p := os.Getenv("MATCHLOG_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configHome(), "matchlog", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "matchlog")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", filepath.Join(dataHome(), "matchlog", "matchlog.db"))
	v.SetDefault("storage.current_key", DefaultCurrentKey)
	v.SetDefault("storage.legacy_key", DefaultLegacyKey)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads configuration from file and env. A .env file in the working
// directory is loaded first; variables already set in the environment win.
// Env var overrides use prefix MATCHLOG_.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("MATCHLOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("app.name", cfg.App.Name)
	v.Set("storage.driver", cfg.Storage.Driver)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.current_key", cfg.Storage.CurrentKey)
	v.Set("storage.legacy_key", cfg.Storage.LegacyKey)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
