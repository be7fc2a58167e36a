package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jask/matchlog/internal/filter"
	"github.com/jask/matchlog/internal/match"
	"github.com/jask/matchlog/internal/stats"
)

// filterFlags select a view of the collection.
type filterFlags struct {
	text    string
	surface string
	outcome string
	from    string
	to      string
	noColor bool
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.text, "search", "s", "", "Text matched against opponent, notes and tags")
	fs.StringVar(&f.surface, "surface", "", "Only matches on this surface")
	fs.StringVar(&f.outcome, "outcome", "", "Only matches with this outcome (W, L, RET)")
	fs.StringVar(&f.from, "from", "", "Earliest date (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Latest date (YYYY-MM-DD)")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
}

func (f *filterFlags) criteria() (filter.Criteria, error) {
	from, err := filter.ParseDate(f.from)
	if err != nil {
		return filter.Criteria{}, fmt.Errorf("--from: %w", err)
	}
	to, err := filter.ParseDate(f.to)
	if err != nil {
		return filter.Criteria{}, fmt.Errorf("--to: %w", err)
	}
	outcome := strings.ToUpper(strings.TrimSpace(f.outcome))
	if outcome != "" && !match.Outcome(outcome).Valid() {
		return filter.Criteria{}, fmt.Errorf("--outcome: unknown outcome %q", f.outcome)
	}
	return filter.Criteria{Text: f.text, Surface: f.surface, Outcome: outcome, From: from, To: to}, nil
}

func (f *filterFlags) view(cmd *cobra.Command, env *Env) ([]match.Record, error) {
	if f.noColor {
		color.NoColor = true //nolint:reassign // library switch
	}
	c, err := f.criteria()
	if err != nil {
		return nil, err
	}
	svc, err := env.service(cmd.Context())
	if err != nil {
		return nil, err
	}
	return filter.Apply(svc.All(), c), nil
}

func newListCommand(env *Env) *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List matches",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := f.view(cmd, env)
			if err != nil {
				return err
			}
			env.printf("%s\n", renderMatches(rows))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newStatsCommand(env *Env) *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := f.view(cmd, env)
			if err != nil {
				return err
			}
			env.printf("%s\n", renderSummary(stats.Compute(rows), env.Now()))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newSuggestCommand(env *Env) *cobra.Command {
	var maxDistance int
	cmd := &cobra.Command{
		Use:   "suggest <name>",
		Short: "Find recorded opponents with a similar name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			hints := filter.SimilarOpponents(svc.All(), args[0], maxDistance)
			if len(hints) == 0 {
				env.printf("no similar opponents\n")
				return nil
			}
			for _, h := range hints {
				env.printf("%s\t(distance %d)\n", h.Name, h.Distance)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxDistance, "max", suggestDistance, "Maximum edit distance")
	return cmd
}

func renderMatches(rows []match.Record) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"ID", "Date", "Time", "Opponent", "Surface", "Format", "Sets", "Result", "Min", "RPE"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{
			shortID(r.ID),
			orDash(r.Date),
			orDash(r.StartTime),
			orDash(r.Opponent),
			orDash(r.Surface),
			orDash(r.Format),
			orDash(match.DisplaySets(r.Sets)),
			colorOutcome(r.Outcome),
			number(r.DurationMinutes, "%.0f"),
			number(r.Effort, "%.1f"),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d matches", len(rows))})
	return tbl.Render()
}

func renderSummary(s stats.Summary, now time.Time) string {
	l := s.Labels()
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendRows([]table.Row{
		{"Matches", humanize.Comma(int64(s.Total))},
		{"Won / lost", fmt.Sprintf("%d / %d", s.Wins, s.Losses)},
		{"Win rate", l.WinRate},
		{"Current streak", streakLabel(s.Streak)},
		{"Avg duration", l.AvgDuration},
		{"Avg RPE", l.AvgEffort},
		{"Last played", lastPlayed(s.LastPlayed, now)},
	})
	out := tbl.Render()
	if len(s.Surfaces) == 0 {
		return out
	}

	surf := table.NewWriter()
	surf.SetStyle(table.StyleLight)
	surf.AppendHeader(table.Row{"Surface", "Played", "Won", "Win rate"})
	for _, sr := range s.Surfaces {
		surf.AppendRow(table.Row{sr.Surface, sr.Played, sr.Wins, fmt.Sprintf("%d%%", sr.WinRate)})
	}
	return out + "\n" + surf.Render()
}

func streakLabel(s *stats.Streak) string {
	if s == nil {
		return match.Placeholder
	}
	return fmt.Sprintf("%s %d", colorOutcome(s.Outcome), s.Length)
}

// lastPlayed renders the most recent date with a relative hint.
func lastPlayed(date string, now time.Time) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return orDash(date)
	}
	return fmt.Sprintf("%s (%s)", date, humanize.RelTime(t, now, "ago", "from now"))
}

func colorOutcome(o match.Outcome) string {
	switch o {
	case match.OutcomeWin:
		return color.New(color.FgGreen).Sprint(o)
	case match.OutcomeLoss:
		return color.New(color.FgRed).Sprint(o)
	case match.OutcomeRetired:
		return color.New(color.FgYellow).Sprint(o)
	default:
		return match.Placeholder
	}
}

func number(v *float64, format string) string {
	if v == nil {
		return match.Placeholder
	}
	return fmt.Sprintf(format, *v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return match.Placeholder
	}
	return s
}

func joinNames(hints []filter.Suggestion) string {
	names := make([]string, len(hints))
	for i, h := range hints {
		names[i] = h.Name
	}
	return strings.Join(names, ", ")
}
