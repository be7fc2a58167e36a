package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jask/matchlog/internal/database"
	"github.com/jask/matchlog/internal/database/repository"
)

// SQLite stores blobs in a sqlite database file.
type SQLite struct {
	db    *sql.DB
	blobs *repository.BlobRepo
}

// OpenSQLite migrates and opens the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if err := database.RunMigrations(path); err != nil {
		return nil, wrap("migrate", path, err)
	}
	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, wrap("open", path, err)
	}
	return &SQLite{db: db, blobs: repository.NewBlobRepo(db)}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, false, wrap("get", key, err)
	}
	return v, ok, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	return wrap("put", key, s.blobs.Put(ctx, key, value))
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	return wrap("delete", key, s.blobs.Delete(ctx, key))
}

func (s *SQLite) DeleteAll(ctx context.Context, keys ...string) error {
	return wrap("delete", strings.Join(keys, ","), s.blobs.DeleteAll(ctx, keys...))
}

func (s *SQLite) Close() error { return s.db.Close() }
