// Package filter narrows a match collection with a compound predicate.
package filter

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jask/matchlog/internal/match"
)

// Criteria defines list filters. Empty strings and zero times are unset.
type Criteria struct {
	Text    string
	Surface string
	Outcome string
	From    time.Time
	To      time.Time
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Text) == "" && c.Surface == "" && c.Outcome == "" &&
		c.From.IsZero() && c.To.IsZero()
}

// Apply returns the records matching every set criterion, in original order.
func Apply(records []match.Record, c Criteria) []match.Record {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(c.Text))
	from, to := day(c.From), day(c.To)

	out := make([]match.Record, 0, len(records))
	for _, r := range records {
		if query != "" && !strings.Contains(fold.String(haystack(r)), query) {
			continue
		}
		if c.Surface != "" && r.Surface != c.Surface {
			continue
		}
		if c.Outcome != "" && string(r.Outcome) != c.Outcome {
			continue
		}
		if !inRange(r.Date, from, to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func haystack(r match.Record) string {
	var parts []string
	for _, s := range []string{r.Opponent, r.Notes, r.Tags} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// inRange compares at day granularity; bounds are inclusive.
func inRange(date string, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if date == "" {
		return false
	}
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return false
	}
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD bound; empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}
