package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/matchlog/internal/sampledata"
	"github.com/jask/matchlog/internal/service"
)

func newExportCommand(env *Env) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all matches to a JSON or CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind := strings.ToLower(format)
			if kind != service.KindJSON && kind != service.KindCSV {
				return fmt.Errorf("--format: want json or csv, got %q", format)
			}
			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			write := svc.ExportJSON
			if kind == service.KindCSV {
				write = svc.ExportCSV
			}
			if out == "-" {
				return write(env.Out)
			}
			if out == "" {
				out = svc.ExportFileName(kind, env.Now())
			}
			if err := writeFile(out, write); err != nil {
				return err
			}
			env.printf("exported %d matches to %s\n", svc.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", service.KindJSON, "Export format: json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", `Output file ("-" for stdout, default <app>_<date>.<format>)`)
	return cmd
}

// writeFile writes through a temporary file renamed into place.
func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func newImportCommand(env *Env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge matches from a JSON or CSV file",
		Long: `Merge matches from a JSON or CSV file. Matches whose id is already
recorded are replaced; new ids are appended. Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToLower(format)
			if kind == "" || kind == "auto" {
				kind = service.KindJSON
				if strings.EqualFold(filepath.Ext(args[0]), ".csv") {
					kind = service.KindCSV
				}
			}
			if kind != service.KindJSON && kind != service.KindCSV {
				return fmt.Errorf("--format: want auto, json or csv, got %q", format)
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			var res service.IngestResult
			if kind == service.KindCSV {
				res, err = svc.ImportCSV(cmd.Context(), r)
			} else {
				res, err = svc.ImportJSON(cmd.Context(), r)
			}
			if err != nil {
				return err
			}
			for _, e := range res.Errors {
				env.warnf("%v\n", e)
			}
			env.printf("imported %d matches (%d new, %d replaced, %d rejected", res.Imported, res.Added, res.Replaced, res.Rejected)
			if res.SkippedSets > 0 {
				env.printf(", %d malformed sets skipped", res.SkippedSets)
			}
			env.printf(")\n")
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Input format: auto, json or csv")
	return cmd
}

func newSampleCommand(env *Env) *cobra.Command {
	var (
		count int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Add the demo match, or --count generated matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			now := env.Now()
			if count <= 0 {
				r, err := svc.AddSample(cmd.Context(), now)
				if err != nil {
					return err
				}
				env.printf("added %s (%s)\n", r.ID, describe(r))
				return nil
			}
			if !cmd.Flags().Changed("seed") {
				seed = now.UnixNano()
			}
			res, err := svc.AddAll(cmd.Context(), sampledata.MatchesUntil(count, seed, now))
			if err != nil {
				return err
			}
			env.printf("generated %d matches (%d new, %d replaced)\n", count, res.Added, res.Replaced)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of generated matches")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Generator seed (default: current time)")
	return cmd
}

func newResetCommand(env *Env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every recorded match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset deletes all matches; rerun with --yes to confirm")
			}
			svc, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			n := svc.Len()
			if err := svc.Reset(cmd.Context()); err != nil {
				return err
			}
			env.printf("removed %d matches\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}
