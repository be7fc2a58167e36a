// Package storage provides the key/blob media the match collection is
// persisted to. Every medium holds whole values under string keys; there is no
// partial update.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jask/matchlog/internal/apperr"
)

// Store is a key/blob medium.
type Store interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put replaces the value under key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// MultiDeleter is implemented by media that can remove several keys at once.
type MultiDeleter interface {
	DeleteAll(ctx context.Context, keys ...string) error
}

// DeleteKeys removes keys from s, in a single operation when s supports it.
func DeleteKeys(ctx context.Context, s Store, keys ...string) error {
	if md, ok := s.(MultiDeleter); ok {
		return md.DeleteAll(ctx, keys...)
	}
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Supported drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// Config selects and configures a medium.
type Config struct {
	Driver string
	// Path is the sqlite database file, or the directory for file and badger.
	Path string
	// KeyPrefix namespaces keys in the badger medium.
	KeyPrefix string
}

// Open returns the medium named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}
	switch driver {
	case DriverMemory, DriverFile, DriverSQLite, DriverBadger:
	default:
		return nil, apperr.Storage("open", fmt.Errorf("unknown driver %q", cfg.Driver))
	}
	if driver != DriverMemory {
		if strings.TrimSpace(cfg.Path) == "" {
			return nil, apperr.Storage("open "+driver, errors.New("path is required"))
		}
		parent := cfg.Path
		if driver == DriverSQLite {
			parent = filepath.Dir(cfg.Path)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, wrap("mkdir", parent, err)
		}
	}
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFileStore(cfg.Path)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	default:
		return OpenBadger(BadgerConfig{Dir: cfg.Path, KeyPrefix: cfg.KeyPrefix})
	}
}

func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return apperr.Storage(op+" "+key, err)
}
