package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sandeepkv93/streakd/internal/clierr"
	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the command tree against a database in a temp dir.
func runCLI(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--db", db, "--no-color"}, args...))
	_, err := rootCmd.ExecuteC()
	return stdout.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("STREAKD_DATA_DIR", dir)
	t.Setenv("STREAKD_OUTPUT", "")
	return filepath.Join(dir, "streakd.db")
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected clierr %s, got %v", code, err)
	}
	if cliErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, cliErr.Code, cliErr.Message)
	}
}

func TestAddTodayDoneFlow(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, db, "add", "Read", "book", "--at", "08:00", "--prio", "high", "--cat", "study")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, `Added "Read book"`) {
		t.Fatalf("unexpected add output: %q", out)
	}
	if _, err := runCLI(t, db, "add", "Stretch"); err != nil {
		t.Fatalf("add second: %v", err)
	}

	out, err = runCLI(t, db, "today", "--json")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	var day struct {
		Date         string             `json:"date"`
		Productivity int                `json:"productivity"`
		Tasks        []model.TaskRecord `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(out), &day); err != nil {
		t.Fatalf("decode today: %v\n%s", err, out)
	}
	if len(day.Tasks) != 2 || day.Tasks[0].Text != "Read book" || day.Tasks[0].Priority != model.PriorityHigh {
		t.Fatalf("unexpected checklist: %+v", day.Tasks)
	}

	for _, idx := range []string{"1", "2"} {
		if _, err := runCLI(t, db, "done", "today", idx); err != nil {
			t.Fatalf("done %s: %v", idx, err)
		}
	}
	out, err = runCLI(t, db, "streak", "--json")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if !strings.Contains(out, `"count": 1`) {
		t.Fatalf("expected streak count 1, got %s", out)
	}

	out, err = runCLI(t, db, "done", "today", "1", "--undo")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !strings.Contains(out, `Reopened "Read book"`) {
		t.Fatalf("unexpected undo output: %q", out)
	}
}

func TestDoneUnknownTask(t *testing.T) {
	db := setupCLI(t)
	_, err := runCLI(t, db, "done", "today", "7")
	requireCode(t, err, clierr.TaskNotFound)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	db := setupCLI(t)
	_, err := runCLI(t, db, "add", "Nap", "--priority", "urgent")
	requireCode(t, err, clierr.InvalidInput)

	_, err = runCLI(t, db, "add", "Nap", "--date", "2024-02-30")
	requireCode(t, err, clierr.InvalidDate)
}

func TestLogAndJournal(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, db, "log", "25m", "Deep", "work")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.Contains(out, `Logged 25m on "Deep work" (total 25m)`) {
		t.Fatalf("unexpected log output: %q", out)
	}
	if _, err := runCLI(t, db, "log", "0"); err == nil {
		t.Fatal("expected error for zero minutes")
	}

	if _, err := runCLI(t, db, "journal", "Good", "day"); err != nil {
		t.Fatalf("journal write: %v", err)
	}
	out, err = runCLI(t, db, "journal", "--json")
	if err != nil {
		t.Fatalf("journal read: %v", err)
	}
	var entry struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("decode journal: %v", err)
	}
	if entry.Text != "Good day" {
		t.Fatalf("unexpected journal text %q", entry.Text)
	}

	if _, err := runCLI(t, db, "journal", "--affirm", "I", "ship"); err != nil {
		t.Fatalf("affirm: %v", err)
	}
	out, _ = runCLI(t, db, "journal")
	if !strings.Contains(out, "Saved Affirmation") || !strings.HasPrefix(out, "Good day") {
		t.Fatalf("expected affirmation appended, got %q", out)
	}
}

func TestClearRequiresConfirmationWhenNotTerminal(t *testing.T) {
	db := setupCLI(t)
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	if _, err := runCLI(t, db, "add", "Read"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := runCLI(t, db, "done", "today", "1"); err != nil {
		t.Fatalf("done: %v", err)
	}
	_, err := runCLI(t, db, "clear", "all")
	requireCode(t, err, clierr.ConfirmationReq)

	_, err = runCLI(t, db, "clear", "sometimes", "--yes")
	requireCode(t, err, clierr.InvalidRange)

	out, err := runCLI(t, db, "clear", "all", "--yes")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(out, "Cleared all: 1 task days") || !strings.Contains(out, "Streak reset.") {
		t.Fatalf("unexpected clear output: %q", out)
	}
}

func TestClearPromptsOnTerminal(t *testing.T) {
	db := setupCLI(t)
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return true }
	t.Cleanup(func() {
		stdinIsTerminal = orig
		rootCmd.SetIn(nil)
	})

	if _, err := runCLI(t, db, "add", "Read"); err != nil {
		t.Fatalf("add: %v", err)
	}
	rootCmd.SetIn(strings.NewReader("n\n"))
	if _, err := runCLI(t, db, "clear", "today"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	out, _ := runCLI(t, db, "today", "--json")
	if !strings.Contains(out, `"Read"`) {
		t.Fatalf("expected task kept after declining, got %s", out)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupCLI(t)
	if _, err := runCLI(t, db, "journal", "Notes"); err != nil {
		t.Fatalf("journal: %v", err)
	}
	out, err := runCLI(t, db, "export", "--yaml")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, want := range []string{"version:", "daily_streak:", "Notes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in export:\n%s", want, out)
		}
	}
}

func TestThemeSelectAndSave(t *testing.T) {
	db := setupCLI(t)
	if _, err := runCLI(t, db, "theme", "save", "sunset", "Sunset", "--color=--primary=#ff7700"); err != nil {
		t.Fatalf("theme save: %v", err)
	}
	if _, err := runCLI(t, db, "theme", "sunset"); err != nil {
		t.Fatalf("theme select: %v", err)
	}
	_, err := runCLI(t, db, "theme", "no-such-theme")
	requireCode(t, err, clierr.InvalidTheme)
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local)
	cases := map[string]string{
		"":           "2024-03-01",
		"today":      "2024-03-01",
		"Yesterday":  "2024-02-29",
		"tomorrow":   "2024-03-02",
		"2023-12-31": "2023-12-31",
	}
	for in, want := range cases {
		got, err := resolveDate(in, now)
		if err != nil || got != want {
			t.Fatalf("resolveDate(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	_, err := resolveDate("03/01/2024", now)
	requireCode(t, err, clierr.InvalidDate)
}

func TestMapError(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("%w: x", tracker.ErrTaskNotFound), clierr.TaskNotFound},
		{fmt.Errorf("%w: x", datekey.ErrInvalidKey), clierr.InvalidDate},
		{tracker.ErrInvalidRange, clierr.InvalidRange},
		{tracker.ErrUnknownTheme, clierr.InvalidTheme},
		{model.ErrInvalidCategory, clierr.InvalidInput},
		{tracker.ErrNoFocusTime, clierr.InvalidInput},
		{errors.New("disk on fire"), clierr.InternalError},
	}
	for _, tc := range cases {
		requireCode(t, mapError(tc.err), tc.code)
	}
	if mapError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
	orig := clierr.New(clierr.ConfigError, "bad")
	if mapError(orig) != orig {
		t.Fatal("expected clierr passthrough")
	}
}
