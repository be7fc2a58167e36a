package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// BadgerConfig configures the badger medium.
type BadgerConfig struct {
	// Dir is the data directory. Ignored when InMemory is set.
	Dir string
	// InMemory keeps everything in memory (tests).
	InMemory bool
	// KeyPrefix is added to all keys.
	KeyPrefix string
}

// Badger stores blobs in an embedded badger database.
type Badger struct {
	db     *badger.DB
	prefix string
}

func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithSyncWrites(true).WithNumVersionsToKeep(1).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, wrap("open", cfg.Dir, err)
	}
	return &Badger{db: db, prefix: cfg.KeyPrefix}, nil
}

func (b *Badger) key(key string) []byte { return []byte(b.prefix + key) }

func (b *Badger) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, wrap("get", key, err)
	}
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrap("get", key, err)
	}
	return value, true, nil
}

func (b *Badger) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return wrap("put", key, err)
	}
	return wrap("put", key, b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key(key), value)
	}))
}

func (b *Badger) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return wrap("delete", key, err)
	}
	return wrap("delete", key, b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.key(key))
	}))
}

func (b *Badger) DeleteAll(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return wrap("delete", strings.Join(keys, ","), err)
	}
	return wrap("delete", strings.Join(keys, ","), b.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(b.key(key)); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (b *Badger) Close() error { return b.db.Close() }
