package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/streakd/internal/clierr"
	"github.com/sandeepkv93/streakd/internal/output"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

var clearCmd = &cobra.Command{
	Use:   "clear RANGE",
	Short: "Delete tasks and journal entries in a date range",
	Long: `Deletes task and journal days inside RANGE, one of today, past_7_days,
past_30_days, this_month, this_year or all. "all" also resets the streak.
Prompts for confirmation in interactive mode.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"today", "past_7_days", "past_30_days", "this_month", "this_year", "all"},
	RunE:      runClear,
}

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	r := tracker.Range(strings.ToLower(args[0]))
	if !r.IsValid() {
		return mapError(fmt.Errorf("%w: %q", tracker.ErrInvalidRange, args[0]))
	}
	yes, _ := cmd.Flags().GetBool("yes")

	if !yes {
		if !stdinIsTerminal() {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Clear all data in %s? This cannot be undone. [y/N] ", r)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Canceled.")
			return nil
		}
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.tracker.Clear(cmd.Context(), r)
	if err != nil {
		return mapError(err)
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), res)
	}
	output.Messagef(cmd.OutOrStdout(), "Cleared %s: %d task days, %d journal days", res.Range, res.TaskDays, res.JournalDays)
	if res.StreakReset {
		output.Messagef(cmd.OutOrStdout(), "Streak reset.")
	}
	return nil
}
