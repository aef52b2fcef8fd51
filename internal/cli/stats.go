package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/streakd/internal/analytics"
	"github.com/sandeepkv93/streakd/internal/clierr"
	"github.com/sandeepkv93/streakd/internal/output"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the year, month, week and day productivity rollup",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var seriesCmd = &cobra.Command{
	Use:       "series week|month|year",
	Short:     "Show a productivity and focus-time series",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"week", "month", "year"},
	RunE:      runSeries,
}

var historyCmd = &cobra.Command{
	Use:   "history TASK",
	Short: "Show every scheduled instance of a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistory,
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List unlocked and locked achievements",
	Args:  cobra.NoArgs,
	RunE:  runAchievements,
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the perfect-day streak",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

func init() {
	seriesCmd.Flags().String("month", "", "month for the month series (YYYY-MM, default current)")
	seriesCmd.Flags().Int("year", 0, "year for the year series (default current)")
	rootCmd.AddCommand(statsCmd, seriesCmd, historyCmd, achievementsCmd, streakCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	printWarnings(cmd.ErrOrStderr(), s.tracker.Warnings())

	state := s.tracker.State()
	tree := analytics.BuildTree(state.Tasks)
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), tree)
	}
	output.TreeTable(cmd.OutOrStdout(), tree)
	return nil
}

func runSeries(cmd *cobra.Command, args []string) error {
	yearArg, _ := cmd.Flags().GetInt("year")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	now := s.tracker.Now()
	state := s.tracker.State()
	out := cmd.OutOrStdout()
	jsonMode := outputFormat() == output.FormatJSON

	switch strings.ToLower(args[0]) {
	case "week":
		points := analytics.TrailingDays(state.Tasks, now, s.cfg.TrailingDays)
		ct := analytics.CategoryTime{}
		for _, p := range points {
			for b, v := range analytics.TimeByCategory(state.Tasks.Get(p.Key)) {
				ct[b] += v
			}
		}
		if jsonMode {
			return output.JSON(out, map[string]any{"days": points, "category_time": ct})
		}
		output.DaySeriesTable(out, fmt.Sprintf("Last %d days", len(points)), points)
		fmt.Fprintln(out)
		output.CategoryTable(out, ct)
	case "month":
		month, err := monthFlag(cmd, now)
		if err != nil {
			return err
		}
		series := analytics.Month(state.Tasks, month.Year(), month.Month())
		if jsonMode {
			return output.JSON(out, series)
		}
		output.DaySeriesTable(out, fmt.Sprintf("%s %d", series.Month, series.Year), series.Days)
		fmt.Fprintln(out)
		output.CategoryTable(out, series.CategoryTime)
	case "year":
		year := now.Year()
		if yearArg > 0 {
			year = yearArg
		}
		points := analytics.Year(state.Tasks, year)
		if jsonMode {
			return output.JSON(out, map[string]any{"year": year, "months": points})
		}
		output.YearSeriesTable(out, year, points)
	default:
		return clierr.Newf(clierr.InvalidInput, "unknown series %q (want week, month or year)", args[0])
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	h := s.tracker.History(strings.Join(args, " "))
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), h)
	}
	output.HistoryTable(cmd.OutOrStdout(), h)
	return nil
}

func runAchievements(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	report := s.tracker.Report(time.Time{})
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), achievementsJSON(report))
	}
	output.AchievementsTable(cmd.OutOrStdout(), report.Achievements)
	return nil
}

func runStreak(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	report := s.tracker.Report(time.Time{})
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{
			"count":                report.Streak.Count,
			"last_completion_date": report.Streak.LastCompletionDate,
			"active":               report.StreakActive,
		})
	}
	output.StreakTable(cmd.OutOrStdout(), report.Streak, report.StreakActive)
	return nil
}

type achievementJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// achievementsJSON lists unlocked then locked entries, each in catalog order.
// Predicates do not serialize, so definitions are projected first.
func achievementsJSON(r tracker.Report) []achievementJSON {
	out := make([]achievementJSON, 0, len(r.Achievements.Unlocked)+len(r.Achievements.Locked))
	for _, d := range r.Achievements.Unlocked {
		out = append(out, achievementJSON{ID: d.ID, Title: d.Title, Description: d.Description, Icon: d.Icon, Unlocked: true})
	}
	for _, d := range r.Achievements.Locked {
		out = append(out, achievementJSON{ID: d.ID, Title: d.Title, Description: d.Description, Icon: d.Icon})
	}
	return out
}
