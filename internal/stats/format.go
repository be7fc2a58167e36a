package stats

import (
	"fmt"
	"strings"

	"github.com/jask/matchlog/internal/match"
)

// Labels renders each metric the way the list header shows them.
type Labels struct {
	WinRate     string
	Surfaces    string
	Streak      string
	AvgDuration string
	AvgEffort   string
}

// Labels renders s, using the placeholder for undefined metrics.
func (s Summary) Labels() Labels {
	l := Labels{
		WinRate:     match.Placeholder,
		Surfaces:    match.Placeholder,
		Streak:      match.Placeholder,
		AvgDuration: match.Placeholder,
		AvgEffort:   match.Placeholder,
	}
	if s.WinRate != nil {
		l.WinRate = fmt.Sprintf("%d%%", *s.WinRate)
	}
	if len(s.Surfaces) > 0 {
		lines := make([]string, 0, len(s.Surfaces))
		for _, sr := range s.Surfaces {
			lines = append(lines, fmt.Sprintf("%s: %d%%", sr.Surface, sr.WinRate))
		}
		l.Surfaces = strings.Join(lines, "\n")
	}
	if s.Streak != nil {
		l.Streak = s.Streak.String()
	}
	if s.AvgDuration != nil {
		l.AvgDuration = fmt.Sprintf("%d min", *s.AvgDuration)
	}
	if s.AvgEffort != nil {
		l.AvgEffort = fmt.Sprintf("%.1f", *s.AvgEffort)
	}
	return l
}
