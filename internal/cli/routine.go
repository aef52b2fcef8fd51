package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/streakd/internal/clierr"
	"github.com/sandeepkv93/streakd/internal/output"
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Copy today's tasks across a month",
}

var routineCloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Copy today's tasks onto every later day of the month",
	Args:  cobra.NoArgs,
	RunE:  runRoutineClone,
}

var routineUncloneCmd = &cobra.Command{
	Use:   "unclone",
	Short: "Delete the tasks of every later day of the month",
	Args:  cobra.NoArgs,
	RunE:  runRoutineUnclone,
}

func init() {
	for _, c := range []*cobra.Command{routineCloneCmd, routineUncloneCmd} {
		c.Flags().String("month", "", "target month (YYYY-MM, default current)")
	}
	routineCmd.AddCommand(routineCloneCmd, routineUncloneCmd)
	rootCmd.AddCommand(routineCmd)
}

func monthFlag(cmd *cobra.Command, now time.Time) (time.Time, error) {
	arg, _ := cmd.Flags().GetString("month")
	if arg == "" {
		return now, nil
	}
	month, err := time.ParseInLocation("2006-01", arg, time.Local)
	if err != nil {
		return time.Time{}, clierr.Newf(clierr.InvalidDate, "invalid month %q (want YYYY-MM)", arg)
	}
	return month, nil
}

func runRoutineClone(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	month, err := monthFlag(cmd, s.tracker.Now())
	if err != nil {
		return err
	}
	n, err := s.tracker.CloneTodayRoutine(cmd.Context(), month)
	if err != nil {
		return mapError(err)
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"status": "cloned", "days": n})
	}
	output.Messagef(cmd.OutOrStdout(), "Copied today's routine to %d days", n)
	return nil
}

func runRoutineUnclone(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	month, err := monthFlag(cmd, s.tracker.Now())
	if err != nil {
		return err
	}
	n, err := s.tracker.UncloneMonth(cmd.Context(), month)
	if err != nil {
		return mapError(err)
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"status": "uncloned", "days": n})
	}
	output.Messagef(cmd.OutOrStdout(), "Removed tasks from %d days", n)
	return nil
}
