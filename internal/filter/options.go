package filter

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/matchlog/internal/match"
)

// Surfaces returns the distinct non-empty surfaces in first-seen order.
func Surfaces(records []match.Record) []string {
	return distinct(records, func(r match.Record) string { return r.Surface })
}

// Opponents returns the distinct non-empty opponents in first-seen order.
func Opponents(records []match.Record) []string {
	return distinct(records, func(r match.Record) string { return r.Opponent })
}

func distinct(records []match.Record, key func(match.Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Suggestion is an existing opponent name close to a typed one.
type Suggestion struct {
	Name     string
	Distance int
}

// SimilarOpponents suggests known opponent names within maxDistance edits of
// name, ignoring case. Exact matches are included with distance 0.
func SimilarOpponents(records []match.Record, name string, maxDistance int) []Suggestion {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	var out []Suggestion
	for _, opp := range Opponents(records) {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(opp))
		if d <= maxDistance {
			out = append(out, Suggestion{Name: opp, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}
