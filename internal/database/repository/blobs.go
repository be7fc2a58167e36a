package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jask/matchlog/internal/database"
)

// BlobRepo handles blobs: one serialized value per storage key.
type BlobRepo struct {
	db *sql.DB
}

func NewBlobRepo(db *sql.DB) *BlobRepo { return &BlobRepo{db: db} }

// Get returns the value stored under key; ok is false when no row exists.
func (r *BlobRepo) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Put replaces the value under key.
func (r *BlobRepo) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO blobs(key, value, updated_at) VALUES(?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;
	`, key, value, database.Stamp(time.Now()))
	return err
}

func (r *BlobRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key)
	return err
}

// DeleteAll removes keys in one transaction.
func (r *BlobRepo) DeleteAll(ctx context.Context, keys ...string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
				return err
			}
		}
		return nil
	})
}
