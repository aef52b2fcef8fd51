// Package cli implements the streakd command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/streakd/internal/activity"
	"github.com/sandeepkv93/streakd/internal/clierr"
	"github.com/sandeepkv93/streakd/internal/config"
	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/focus"
	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/output"
	"github.com/sandeepkv93/streakd/internal/storage"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagConfig  string
	flagDB      string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "streakd",
	Short: "Daily planner with streaks, a focus timer and achievements",
	Long: `streakd plans your day, tracks perfect-day streaks and focus time, and
unlocks achievements as you go. Run streakd with no arguments to open the TUI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.config/streakd/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the SQLite database")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command and exits with the mapped status code.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

func outputFormat() output.Format {
	return output.Detect(flagJSON)
}

// loadConfig resolves the config file and applies the --db override.
func loadConfig() (config.RuntimeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, clierr.New(clierr.ConfigError, err.Error())
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	return cfg, nil
}

// session bundles the open database and the tracker built on it.
type session struct {
	cfg     config.RuntimeConfig
	repo    *storage.SQLiteRepository
	tracker *tracker.Tracker
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	repo, err := storage.OpenSQLite(cfg.Database())
	if err != nil {
		return nil, clierr.Newf(clierr.InternalError, "opening database: %v", err)
	}
	log := activity.Discard()
	if cfg.ActivityLog {
		log = activity.New(cfg.ActivityLogPath())
	}
	tr, err := tracker.Open(ctx, repo, tracker.Options{
		Log:          log,
		LockPath:     cfg.LockPath(),
		TrailingDays: cfg.TrailingDays,
	})
	if err != nil {
		_ = repo.Close()
		return nil, mapError(err)
	}
	return &session{cfg: cfg, repo: repo, tracker: tr}, nil
}

func (s *session) Close() error {
	return s.repo.Close()
}

func (s *session) focusModes() focus.Modes {
	return focus.ModesFromMinutes(s.cfg.FocusWorkMinutes, s.cfg.FocusBreakMinutes, s.cfg.LongWorkMinutes, s.cfg.LongBreakMinutes)
}

// printWarnings writes snapshot load warnings to stderr.
func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "Warning: %s\n", msg)
	}
}

// mapError converts library sentinels into structured CLI errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		return err
	}
	switch {
	case errors.Is(err, tracker.ErrTaskNotFound):
		return clierr.New(clierr.TaskNotFound, err.Error())
	case errors.Is(err, datekey.ErrInvalidKey):
		return clierr.New(clierr.InvalidDate, err.Error())
	case errors.Is(err, tracker.ErrInvalidRange):
		return clierr.New(clierr.InvalidRange, err.Error())
	case errors.Is(err, tracker.ErrUnknownTheme):
		return clierr.New(clierr.InvalidTheme, err.Error())
	case errors.Is(err, model.ErrInvalidPriority),
		errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, model.ErrInvalidTime),
		errors.Is(err, tracker.ErrNoFocusTime),
		errors.Is(err, tracker.ErrNoTasks):
		return clierr.New(clierr.InvalidInput, err.Error())
	case errors.Is(err, config.ErrInvalid):
		return clierr.New(clierr.ConfigError, err.Error())
	default:
		return clierr.New(clierr.InternalError, err.Error())
	}
}

// resolveDate accepts "today", "yesterday", "tomorrow" or a YYYY-MM-DD key.
func resolveDate(arg string, now time.Time) (string, error) {
	today := datekey.Today(now)
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return datekey.AddDays(today, -1)
	case "tomorrow":
		return datekey.AddDays(today, 1)
	}
	if !datekey.Valid(arg) {
		return "", clierr.Newf(clierr.InvalidDate, "invalid date %q (want YYYY-MM-DD)", arg).
			WithDetails(map[string]any{"input": arg})
	}
	return arg, nil
}
