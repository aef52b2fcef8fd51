package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/streakd/internal/clierr"
	"github.com/sandeepkv93/streakd/internal/output"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

var logCmd = &cobra.Command{
	Use:   "log MINUTES [TASK]",
	Short: "Log focused minutes against one of today's tasks",
	Long: `Adds focused minutes to today's task with the given name, matched without
regard to case. A task that does not exist yet is created. Without a task name
the time goes to "Miscellaneous".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

var journalCmd = &cobra.Command{
	Use:   "journal [TEXT]",
	Short: "Show or write a journal entry",
	Long: `Without TEXT, prints the entry for --date. With TEXT, replaces it. An empty
string ("") deletes the entry. --affirm appends the text to today's entry as a
saved affirmation instead.`,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().String("date", "today", "journal day (YYYY-MM-DD, today, yesterday)")
	journalCmd.Flags().Bool("affirm", false, "append TEXT to today's entry as an affirmation")
	journalCmd.Flags().Bool("daily-affirmation", false, "print today's affirmation")
	rootCmd.AddCommand(logCmd, journalCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	minutes, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "m"))
	if err != nil || minutes <= 0 {
		return clierr.Newf(clierr.InvalidInput, "invalid minutes %q", args[0])
	}
	name := strings.Join(args[1:], " ")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.tracker.LogFocus(cmd.Context(), name, minutes*60) //nolint:mnd // seconds per minute
	if err != nil {
		return mapError(err)
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"status": "logged", "minutes": minutes, "task": task})
	}
	output.Messagef(cmd.OutOrStdout(), "Logged %dm on %q (total %s)", minutes, task.Text, output.FormatSeconds(task.PomodoroTime))
	return nil
}

func runJournal(cmd *cobra.Command, args []string) error {
	dateArg, _ := cmd.Flags().GetString("date")
	affirm, _ := cmd.Flags().GetBool("affirm")
	daily, _ := cmd.Flags().GetBool("daily-affirmation")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if daily {
		text := tracker.DailyAffirmation(s.tracker.Now())
		if outputFormat() == output.FormatJSON {
			return output.JSON(out, map[string]any{"affirmation": text})
		}
		output.Messagef(out, "%s", text)
		return nil
	}

	if affirm {
		if len(args) == 0 {
			return clierr.New(clierr.InvalidInput, "--affirm requires TEXT")
		}
		entry, err := s.tracker.AppendAffirmation(ctx, strings.Join(args, " "))
		if err != nil {
			return mapError(err)
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(out, map[string]any{"status": "saved", "date": s.tracker.TodayKey(), "text": entry})
		}
		output.Messagef(out, "Affirmation saved to %s", s.tracker.TodayKey())
		return nil
	}

	key, err := resolveDate(dateArg, s.tracker.Now())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		text := s.tracker.State().Journal[key]
		if outputFormat() == output.FormatJSON {
			return output.JSON(out, map[string]any{"date": key, "text": text})
		}
		if text == "" {
			output.Messagef(cmd.ErrOrStderr(), "No journal entry for %s.", key)
			return nil
		}
		output.Messagef(out, "%s", text)
		return nil
	}

	text := strings.Join(args, " ")
	if err := s.tracker.SaveJournal(ctx, key, text); err != nil {
		return mapError(err)
	}
	status := "saved"
	if strings.TrimSpace(text) == "" {
		status = "deleted"
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(out, map[string]any{"status": status, "date": key})
	}
	output.Messagef(out, "Journal %s for %s", status, key)
	return nil
}
