// Package commands implements the matchlog subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"github.com/jask/matchlog/internal/config"
	"github.com/jask/matchlog/internal/logging"
	"github.com/jask/matchlog/internal/service"
	"github.com/jask/matchlog/internal/storage"
)

// Build metadata, set with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

// Env carries the process-wide dependencies of the commands. The service is
// opened lazily so commands like version never touch storage.
type Env struct {
	Out io.Writer
	Err io.Writer
	Now func() time.Time

	// Service, when set, is used as is and never closed by Env.
	Service *service.MatchService

	cfg    config.Config
	logger *bolt.Logger
	store  storage.Store
}

func NewEnv() *Env {
	return &Env{Out: os.Stdout, Err: os.Stderr, Now: time.Now}
}

// service returns the loaded match service, opening storage on first use.
func (e *Env) service(ctx context.Context) (*service.MatchService, error) {
	if e.Service != nil {
		return e.Service, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e.cfg = cfg
	e.logger = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: e.Err})

	store, err := storage.Open(ctx, storage.Config{
		Driver:    cfg.Storage.Driver,
		Path:      cfg.Storage.Path,
		KeyPrefix: "matchlog:",
	})
	if err != nil {
		return nil, err
	}
	e.store = store
	logging.Info(e.logger).Add(logging.Driver(cfg.Storage.Driver)).Add(logging.Path(cfg.Storage.Path)).Msg("storage opened")

	svc := service.NewMatchService(store, service.Options{
		AppName:    cfg.App.Name,
		CurrentKey: cfg.Storage.CurrentKey,
		LegacyKey:  cfg.Storage.LegacyKey,
		Logger:     e.logger,
	})
	if _, err := svc.Load(ctx); err != nil {
		return nil, err
	}
	e.Service = svc
	return svc, nil
}

// Close releases storage opened by Env.
func (e *Env) Close() error {
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store = nil
	return err
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

func (e *Env) warnf(format string, args ...any) {
	fmt.Fprintf(e.Err, "warning: "+format, args...)
}

// NewRootCommand builds the command tree.
func NewRootCommand(env *Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "matchlog",
		Short: "Personal tennis match log",
		Long: `matchlog records tennis matches and summarises how they went.

Matches are kept in a local store (sqlite by default) and can be
filtered, summarised, exported and imported as JSON or CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(env.Out)
	rootCmd.SetErr(env.Err)

	rootCmd.AddCommand(
		newAddCommand(env),
		newEditCommand(env),
		newDeleteCommand(env),
		newListCommand(env),
		newStatsCommand(env),
		newSuggestCommand(env),
		newExportCommand(env),
		newImportCommand(env),
		newSampleCommand(env),
		newResetCommand(env),
		newBrowseCommand(env),
		versionCmd(env),
	)
	return rootCmd
}

func versionCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			env.printf("matchlog %s (commit: %s)\n", Version, Commit)
		},
	}
}
