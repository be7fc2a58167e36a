package service

import (
	"context"
	"time"

	"github.com/jask/matchlog/internal/logging"
	"github.com/jask/matchlog/internal/match"
)

// Reset deletes both storage keys and empties the collection.
func (s *MatchService) Reset(ctx context.Context) error {
	if err := s.clear(ctx); err != nil {
		return err
	}
	s.records = nil
	logging.Warn(s.log).Add(logging.Key(s.current)).Add(logging.Key(s.legacy)).Msg("collection reset")
	return nil
}

// SampleMatch returns the demo match dated on now's calendar day.
func SampleMatch(now time.Time) match.Record {
	r := match.Record{
		Date:            now.Format(time.DateOnly),
		StartTime:       "11:00",
		DurationMinutes: match.Float(95),
		Opponent:        "Sample Rival",
		Surface:         "clay",
		Location:        "Club",
		Format:          match.FormatBestOf3SuperTiebreak,
		Effort:          match.Float(7),
		Tags:            "friendly",
		Notes:           "Served well, solid forehand. Missed cross-court backhands.",
	}
	r.SetSets([]match.SetScore{
		{Me: 6, Rival: 3},
		{Me: 4, Rival: 6},
		{Me: 10, Rival: 7, Tiebreak: "STB"},
	})
	return r
}

// AddSample inserts the demo match.
func (s *MatchService) AddSample(ctx context.Context, now time.Time) (match.Record, error) {
	r, err := s.Upsert(ctx, SampleMatch(now))
	if err != nil {
		return match.Record{}, err
	}
	logging.Info(s.log).Add(logging.MatchID(r.ID)).Msg("sample match added")
	return r, nil
}
