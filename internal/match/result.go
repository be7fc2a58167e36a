package match

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/matchlog/internal/apperr"
)

// Derive computes the outcome from the set sequence. Only set wins are
// counted; a tied set counts for neither side, and equal tallies yield RET.
func Derive(sets []SetScore) Outcome {
	if len(sets) == 0 {
		return OutcomeNone
	}
	var mine, theirs int
	for _, s := range sets {
		switch {
		case s.Me > s.Rival:
			mine++
		case s.Rival > s.Me:
			theirs++
		}
	}
	switch {
	case mine == theirs:
		return OutcomeRetired
	case mine > theirs:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}

// NewID returns a fresh record identity.
func NewID() string { return uuid.NewString() }

// Normalize trims text fields and recomputes the outcome. It never fails.
func Normalize(r Record) Record {
	r.ID = strings.TrimSpace(r.ID)
	r.Date = strings.TrimSpace(r.Date)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.Opponent = strings.TrimSpace(r.Opponent)
	r.Location = strings.TrimSpace(r.Location)
	r.Tags = strings.TrimSpace(r.Tags)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Outcome = Derive(r.Sets)
	return r
}

// Validate checks the fields that must hold before a record is persisted.
func Validate(r Record) error {
	if strings.TrimSpace(r.Date) == "" {
		return apperr.Validation("date is required")
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return apperr.Validation("date %q is not YYYY-MM-DD", r.Date)
	}
	for i, s := range r.Sets {
		if s.Me < 0 || s.Rival < 0 {
			return apperr.Validation("set %d has a negative game count", i+1)
		}
	}
	if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
		return apperr.Validation("duration must not be negative")
	}
	return nil
}

// Prepare normalizes r, assigns an id if missing and validates it.
func Prepare(r Record) (Record, error) {
	r = Normalize(r)
	if r.ID == "" {
		r.ID = NewID()
	}
	if err := Validate(r); err != nil {
		return Record{}, err
	}
	return r, nil
}
