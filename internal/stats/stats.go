// Package stats derives summary metrics from a filtered view of matches.
// Every metric is recomputed from scratch; nil means "not enough data".
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/jask/matchlog/internal/match"
)

// SurfaceRate is the win rate on one surface.
type SurfaceRate struct {
	Surface string
	Played  int
	Wins    int
	WinRate int
}

// Streak is the run of identical outcomes ending at the most recent match.
type Streak struct {
	Outcome match.Outcome
	Length  int
}

func (s Streak) String() string { return fmt.Sprintf("%s %d", s.Outcome, s.Length) }

// Summary bundles the derived metrics.
type Summary struct {
	Total       int
	Wins        int
	Losses      int
	WinRate     *int
	Surfaces    []SurfaceRate
	Streak      *Streak
	AvgDuration *int
	AvgEffort   *float64
	LastPlayed  string
}

// Compute derives the summary for rows.
func Compute(rows []match.Record) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch r.Outcome {
		case match.OutcomeWin:
			s.Wins++
		case match.OutcomeLoss:
			s.Losses++
		}
		if r.Date > s.LastPlayed {
			s.LastPlayed = r.Date
		}
	}
	if s.Total > 0 {
		rate := percent(s.Wins, s.Total)
		s.WinRate = &rate
	}
	s.Surfaces = bySurface(rows)
	s.Streak = currentStreak(rows)
	s.AvgDuration = avgDuration(rows)
	s.AvgEffort = avgEffort(rows)
	return s
}

func bySurface(rows []match.Record) []SurfaceRate {
	index := make(map[string]int)
	var out []SurfaceRate
	for _, r := range rows {
		key := r.Surface
		if key == "" {
			key = match.Placeholder
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, SurfaceRate{Surface: key})
		}
		out[i].Played++
		if r.Outcome == match.OutcomeWin {
			out[i].Wins++
		}
	}
	for i := range out {
		out[i].WinRate = percent(out[i].Wins, out[i].Played)
	}
	return out
}

func currentStreak(rows []match.Record) *Streak {
	sorted := append([]match.Record(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	var st *Streak
	for i := len(sorted) - 1; i >= 0; i-- {
		o := sorted[i].Outcome
		if o == match.OutcomeNone || o == match.OutcomeRetired {
			break
		}
		if st == nil {
			st = &Streak{Outcome: o, Length: 1}
			continue
		}
		if o != st.Outcome {
			break
		}
		st.Length++
	}
	return st
}

func avgDuration(rows []match.Record) *int {
	mean, ok := meanOf(rows, func(r match.Record) *float64 { return r.DurationMinutes })
	if !ok {
		return nil
	}
	v := int(roundHalfUp(mean))
	return &v
}

func avgEffort(rows []match.Record) *float64 {
	mean, ok := meanOf(rows, func(r match.Record) *float64 { return r.Effort })
	if !ok {
		return nil
	}
	v := roundHalfUp(mean*10) / 10
	return &v
}

func meanOf(rows []match.Record, field func(match.Record) *float64) (float64, bool) {
	var sum float64
	var n int
	for _, r := range rows {
		v := field(r)
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func percent(part, total int) int {
	return int(roundHalfUp(100 * float64(part) / float64(total)))
}

func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }
