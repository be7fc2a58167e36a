package storage

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jask/matchlog/internal/apperr"
)

// FileStore keeps one file per key inside a directory. Writes go to a
// temporary file that is renamed over the target, so a value is replaced
// whole or not at all.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, apperr.Storage("open file store", errors.New("dir is required"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrap("mkdir", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, wrap("get", key, err)
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, wrap("get", key, err)
	}
	return data, true, nil
}

func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return wrap("put", key, err)
	}
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return wrap("put", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return wrap("put", key, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return wrap("delete", key, err)
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return wrap("delete", key, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
