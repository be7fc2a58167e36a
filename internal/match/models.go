package match

import (
	"fmt"
	"strings"
)

// SetScore is one set's game counts.
type SetScore struct {
	Me       int    `json:"me"`
	Rival    int    `json:"rival"`
	Tiebreak string `json:"tiebreak"`
}

func (s SetScore) String() string {
	if s.Tiebreak == "" {
		return fmt.Sprintf("%d-%d", s.Me, s.Rival)
	}
	return fmt.Sprintf("%d-%d(%s)", s.Me, s.Rival, s.Tiebreak)
}

// Outcome is the derived result code of a match.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeWin     Outcome = "W"
	OutcomeLoss    Outcome = "L"
	OutcomeRetired Outcome = "RET"
)

// Valid reports whether o is one of the known outcome codes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeNone, OutcomeWin, OutcomeLoss, OutcomeRetired:
		return true
	}
	return false
}

// Known match format codes.
const (
	FormatBestOf3Tiebreak      = "BO3_TB"
	FormatBestOf3SuperTiebreak = "BO3_STB"
	FormatProSet8              = "PRO8"
	FormatSingleSet6           = "SET6"
)

// DefaultFormat is used when an imported row carries no format.
const DefaultFormat = FormatBestOf3Tiebreak

// Placeholder is rendered for empty or undefined values.
const Placeholder = "—"

// FormatLabel returns a display label for a format code. Unknown codes pass through.
func FormatLabel(code string) string {
	switch code {
	case FormatBestOf3Tiebreak:
		return "Best of 3 (tiebreak)"
	case FormatBestOf3SuperTiebreak:
		return "Best of 3 (super tiebreak)"
	case FormatProSet8:
		return "Pro set to 8"
	case FormatSingleSet6:
		return "Single set to 6"
	case "":
		return Placeholder
	default:
		return code
	}
}

// Record is a single played match.
type Record struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	StartTime       string     `json:"startTime"`
	DurationMinutes *float64   `json:"durationMinutes"`
	Opponent        string     `json:"opponent"`
	Surface         string     `json:"surface"`
	Location        string     `json:"location"`
	Format          string     `json:"format"`
	Effort          *float64   `json:"effort"`
	Tags            string     `json:"tags"`
	Notes           string     `json:"notes"`
	Sets            []SetScore `json:"sets"`
	Outcome         Outcome    `json:"outcome"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	if r.DurationMinutes != nil {
		d := *r.DurationMinutes
		out.DurationMinutes = &d
	}
	if r.Effort != nil {
		e := *r.Effort
		out.Effort = &e
	}
	if r.Sets != nil {
		out.Sets = append([]SetScore(nil), r.Sets...)
		if len(out.Sets) == 0 {
			out.Sets = []SetScore{}
		}
	}
	return out
}

// SetSets replaces the set list and recomputes the outcome.
func (r *Record) SetSets(sets []SetScore) {
	r.Sets = sets
	r.Outcome = Derive(sets)
}

// DisplaySets renders sets for listings, e.g. "6-3, 4-6, 10-7(STB)".
func DisplaySets(sets []SetScore) string {
	parts := make([]string, 0, len(sets))
	for _, s := range sets {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}

// CloneAll deep-copies a collection.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 { return &v }
