package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jask/matchlog/internal/codec"
	"github.com/jask/matchlog/internal/filter"
	"github.com/jask/matchlog/internal/match"
)

// suggestDistance is how far an unknown opponent name may be from a known one
// before it is no longer suggested.
const suggestDistance = 3

// recordFlags are the editable fields shared by add and edit.
type recordFlags struct {
	date      string
	startTime string
	duration  float64
	opponent  string
	surface   string
	location  string
	format    string
	effort    float64
	tags      string
	notes     string
	sets      string
}

func (f *recordFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.date, "date", "", "Match date (YYYY-MM-DD, default today)")
	fs.StringVar(&f.startTime, "time", "", "Start time (HH:MM)")
	fs.Float64Var(&f.duration, "duration", 0, "Duration in minutes")
	fs.StringVar(&f.opponent, "opponent", "", "Opponent name")
	fs.StringVar(&f.surface, "surface", "", "Court surface")
	fs.StringVar(&f.location, "location", "", "Venue")
	fs.StringVar(&f.format, "format", match.DefaultFormat, "Format code: BO3_TB, BO3_STB, PRO8, SET6")
	fs.Float64Var(&f.effort, "effort", 0, "Perceived effort (RPE 1-10)")
	fs.StringVar(&f.tags, "tags", "", "Free-form tags")
	fs.StringVar(&f.notes, "notes", "", "Notes")
	fs.StringVar(&f.sets, "sets", "", `Set scores, e.g. "6-4 | 3-6 | 10-7(STB)"`)
}

// apply copies the flags the user set onto r. Sets are parsed with the CSV
// notation and the number of malformed tokens is returned.
func (f *recordFlags) apply(fs *pflag.FlagSet, r *match.Record) int {
	changed := fs.Changed
	if changed("date") {
		r.Date = f.date
	}
	if changed("time") {
		r.StartTime = f.startTime
	}
	if changed("duration") {
		r.DurationMinutes = match.Float(f.duration)
	}
	if changed("opponent") {
		r.Opponent = f.opponent
	}
	if changed("surface") {
		r.Surface = f.surface
	}
	if changed("location") {
		r.Location = f.location
	}
	if changed("format") {
		r.Format = f.format
	}
	if changed("effort") {
		r.Effort = match.Float(f.effort)
	}
	if changed("tags") {
		r.Tags = f.tags
	}
	if changed("notes") {
		r.Notes = f.notes
	}
	if !changed("sets") {
		return 0
	}
	sets, skipped := codec.ParseSets(f.sets)
	r.SetSets(sets)
	return skipped
}

func newAddCommand(env *Env) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			r := match.Record{
				Date:   env.Now().Format(time.DateOnly),
				Format: match.DefaultFormat,
			}
			if skipped := f.apply(cmd.Flags(), &r); skipped > 0 {
				env.warnf("skipped %d malformed set(s)\n", skipped)
			}
			hints := opponentHints(svc.All(), r.Opponent)
			saved, err := svc.Upsert(cmd.Context(), r)
			if err != nil {
				return err
			}
			env.printf("added %s (%s)\n", saved.ID, describe(saved))
			if len(hints) > 0 {
				env.printf("similar opponents on record: %s\n", joinNames(hints))
			}
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newEditCommand(env *Env) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a recorded match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveID(svc.All(), args[0])
			if err != nil {
				return err
			}
			r, _ := svc.Get(id)
			if skipped := f.apply(cmd.Flags(), &r); skipped > 0 {
				env.warnf("skipped %d malformed set(s)\n", skipped)
			}
			saved, err := svc.Upsert(cmd.Context(), r)
			if err != nil {
				return err
			}
			env.printf("updated %s (%s)\n", saved.ID, describe(saved))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newDeleteCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a recorded match",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveID(svc.All(), args[0])
			if err != nil {
				return err
			}
			if _, err := svc.Remove(cmd.Context(), id); err != nil {
				return err
			}
			env.printf("deleted %s\n", id)
			return nil
		},
	}
}

// resolveID accepts a full id or an unambiguous prefix of one, as printed by list.
func resolveID(records []match.Record, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	var found []string
	for _, r := range records {
		if r.ID == arg {
			return r.ID, nil
		}
		if arg != "" && strings.HasPrefix(r.ID, arg) {
			found = append(found, r.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no match with id %q", arg)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", arg, len(found))
	}
}

// opponentHints returns known names close to name, unless name is already known.
func opponentHints(records []match.Record, name string) []filter.Suggestion {
	hints := filter.SimilarOpponents(records, name, suggestDistance)
	if len(hints) > 0 && hints[0].Distance == 0 {
		return nil
	}
	return hints
}

func describe(r match.Record) string {
	sets := match.DisplaySets(r.Sets)
	if sets == "" {
		sets = match.Placeholder
	}
	return fmt.Sprintf("%s vs %s, %s, %s", r.Date, orDash(r.Opponent), sets, orDash(string(r.Outcome)))
}
