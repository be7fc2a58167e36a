// Package database owns the sqlite file behind the sqlite storage driver: its
// connection settings, schema migrations and transaction helper.
package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// connParams are shared by the blob store and the migrator.
const connParams = "_foreign_keys=on&_busy_timeout=5000"

// Open connects to the match database at path. The pool holds one connection
// since sqlite serialises writers anyway.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?"+connParams)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// WithTx runs fn in a transaction bound to ctx and commits only if fn succeeds.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Stamp is the updated_at value recorded for a blob written at t.
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
