// Package service holds the match collection and the operations the CLI and
// the browse view run against it.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/jask/matchlog/internal/apperr"
	"github.com/jask/matchlog/internal/codec"
	"github.com/jask/matchlog/internal/config"
	"github.com/jask/matchlog/internal/logging"
	"github.com/jask/matchlog/internal/match"
	"github.com/jask/matchlog/internal/merge"
	"github.com/jask/matchlog/internal/storage"
)

// Options configures a MatchService.
type Options struct {
	AppName    string
	CurrentKey string
	LegacyKey  string
	Logger     *bolt.Logger
}

// MatchService owns the in-memory collection and keeps it in step with the
// store. Every mutation persists the new collection first and only swaps it in
// once the write succeeded. It is not safe for concurrent use.
type MatchService struct {
	store   storage.Store
	appName string
	current string
	legacy  string
	log     *bolt.Logger

	records []match.Record
}

func NewMatchService(store storage.Store, opts Options) *MatchService {
	s := &MatchService{
		store:   store,
		appName: opts.AppName,
		current: opts.CurrentKey,
		legacy:  opts.LegacyKey,
		log:     opts.Logger,
	}
	if s.appName == "" {
		s.appName = "matchlog"
	}
	if s.current == "" {
		s.current = config.DefaultCurrentKey
	}
	if s.legacy == "" {
		s.legacy = config.DefaultLegacyKey
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	return s
}

// Load reads the collection from the store. The current key wins; otherwise a
// legacy value is migrated to the current key. Unreadable data under either key
// clears both keys and yields an empty collection.
func (s *MatchService) Load(ctx context.Context) ([]match.Record, error) {
	records, found, err := s.read(ctx, s.current)
	if err == nil && !found {
		records, found, err = s.read(ctx, s.legacy)
		if err == nil && found {
			if err := s.write(ctx, records); err != nil {
				return nil, err
			}
			if err := s.store.Delete(ctx, s.legacy); err != nil {
				return nil, err
			}
			logging.Info(s.log).
				Add(logging.Key(s.legacy)).
				Add(logging.Count("records", len(records))).
				Msg("migrated legacy collection")
		}
	}
	if errors.Is(err, apperr.ErrParse) {
		logging.Warn(s.log).Add(logging.ErrorField(err)).Msg("stored collection is unreadable, starting empty")
		if err := s.clear(ctx); err != nil {
			return nil, err
		}
		records, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.records = records
	return s.All(), nil
}

func (s *MatchService) read(ctx context.Context, key string) ([]match.Record, bool, error) {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	decoded, err := codec.DecodeJSON(data)
	if err != nil {
		return nil, true, fmt.Errorf("key %s: %w", key, err)
	}
	return decoded.Records, true, nil
}

func (s *MatchService) write(ctx context.Context, records []match.Record) error {
	data, err := codec.MarshalJSON(records)
	if err != nil {
		return apperr.Storage("encode "+s.current, err)
	}
	return s.store.Put(ctx, s.current, data)
}

func (s *MatchService) clear(ctx context.Context) error {
	return storage.DeleteKeys(ctx, s.store, s.current, s.legacy)
}

// Persist writes records under the current key and makes them the in-memory
// collection. On failure the previous collection is kept.
func (s *MatchService) Persist(ctx context.Context, records []match.Record) error {
	next := match.CloneAll(records)
	if err := s.write(ctx, next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// Upsert validates r, assigns an id if it has none and inserts or replaces it.
// Replacing keeps the record's position.
func (s *MatchService) Upsert(ctx context.Context, r match.Record) (match.Record, error) {
	r, err := match.Prepare(r)
	if err != nil {
		return match.Record{}, err
	}
	next, _ := merge.Merge(s.records, []match.Record{r})
	if err := s.Persist(ctx, next); err != nil {
		return match.Record{}, err
	}
	return r.Clone(), nil
}

// Remove deletes the record with id. It reports whether a record was removed.
func (s *MatchService) Remove(ctx context.Context, id string) (bool, error) {
	next := make([]match.Record, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if len(next) == len(s.records) {
		return false, nil
	}
	if err := s.Persist(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// AddAll merges records into the collection and persists the result.
func (s *MatchService) AddAll(ctx context.Context, records []match.Record) (merge.Result, error) {
	next, res := merge.Merge(s.records, records)
	if err := s.Persist(ctx, next); err != nil {
		return merge.Result{}, err
	}
	return res, nil
}

// All returns a copy of the collection in insertion order.
func (s *MatchService) All() []match.Record { return match.CloneAll(s.records) }

// Get returns the record with id.
func (s *MatchService) Get(id string) (match.Record, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return match.Record{}, false
}

// Len reports the number of records.
func (s *MatchService) Len() int { return len(s.records) }
