// Package merge combines an incoming match collection with the existing one.
package merge

import "github.com/jask/matchlog/internal/match"

// Result counts what a merge changed.
type Result struct {
	Added    int
	Replaced int
}

// Merge overlays incoming onto existing by id. An incoming record always
// replaces an existing one with the same id, regardless of dates; later
// duplicates within incoming win too. Existing ids keep their position and new
// ids follow in arrival order. Records without an id are ignored; callers
// reject or assign ids before merging.
func Merge(existing, incoming []match.Record) ([]match.Record, Result) {
	var res Result
	out := make([]match.Record, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	pos := make(map[string]int, len(existing)+len(incoming))
	for i, r := range existing {
		pos[r.ID] = i
	}
	seeded := len(existing)
	for _, r := range incoming {
		if r.ID == "" {
			continue
		}
		if i, ok := pos[r.ID]; ok {
			if i < seeded {
				res.Replaced++
			}
			out[i] = r
			continue
		}
		pos[r.ID] = len(out)
		out = append(out, r)
		res.Added++
	}
	return out, res
}
