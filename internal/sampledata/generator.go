// Package sampledata generates plausible match collections for tests and demos.
package sampledata

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/jask/matchlog/internal/match"
)

var (
	opponents = []string{"Carlos Ruiz", "Ana Gómez", "Lucía Pérez", "Marco Bianchi", "Tom Baker", "Iker Sanz"}
	surfaces  = []string{"clay", "hard", "grass", "indoor"}
	locations = []string{"Club Norte", "Municipal Courts", "Riverside TC", ""}
	tags      = []string{"league", "friendly", "tournament", "practice", ""}
	formats   = []string{match.FormatBestOf3Tiebreak, match.FormatBestOf3SuperTiebreak, match.FormatProSet8, match.FormatSingleSet6}
)

// anchor is the last day of the fixed-date series returned by Matches.
var anchor = time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

// Matches returns n deterministic records for seed, ending on a fixed date.
func Matches(n int, seed int64) []match.Record {
	return MatchesUntil(n, seed, anchor)
}

// MatchesUntil returns n deterministic records for seed whose dates run back
// from end, oldest first.
func MatchesUntil(n int, seed int64, end time.Time) []match.Record {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x6d61746368))
	out := make([]match.Record, 0, n)
	day := end.AddDate(0, 0, -3*n)
	for i := range n {
		day = day.AddDate(0, 0, 1+rng.IntN(3))
		format := formats[rng.IntN(len(formats))]
		r := match.Record{
			ID:              uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "matchlog/%d/%d", seed, i)).String(),
			Date:            day.Format(time.DateOnly),
			StartTime:       fmt.Sprintf("%02d:%02d", 8+rng.IntN(12), 15*rng.IntN(4)),
			DurationMinutes: match.Float(float64(45 + rng.IntN(100))),
			Opponent:        opponents[rng.IntN(len(opponents))],
			Surface:         surfaces[rng.IntN(len(surfaces))],
			Location:        locations[rng.IntN(len(locations))],
			Format:          format,
			Effort:          match.Float(float64(3 + rng.IntN(8))),
			Tags:            tags[rng.IntN(len(tags))],
		}
		r.SetSets(sets(rng, format))
		out = append(out, r)
	}
	return out
}

func sets(rng *rand.Rand, format string) []match.SetScore {
	switch format {
	case match.FormatProSet8:
		return []match.SetScore{set(rng, 8)}
	case match.FormatSingleSet6:
		return []match.SetScore{set(rng, 6)}
	}
	out := []match.SetScore{set(rng, 6), set(rng, 6)}
	if (out[0].Me > out[0].Rival) == (out[1].Me > out[1].Rival) {
		return out
	}
	if format == match.FormatBestOf3SuperTiebreak {
		a, b := 10, rng.IntN(9)
		if rng.IntN(2) == 0 {
			a, b = b, a
		}
		return append(out, match.SetScore{Me: a, Rival: b, Tiebreak: "STB"})
	}
	return append(out, set(rng, 6))
}

func set(rng *rand.Rand, games int) match.SetScore {
	loser := rng.IntN(games - 1)
	if rng.IntN(2) == 0 {
		return match.SetScore{Me: games, Rival: loser}
	}
	return match.SetScore{Me: loser, Rival: games}
}
