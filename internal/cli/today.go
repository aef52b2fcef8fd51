package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sandeepkv93/streakd/internal/analytics"
	"github.com/sandeepkv93/streakd/internal/clierr"
	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/output"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

var todayCmd = &cobra.Command{
	Use:   "today [DATE]",
	Short: "Show the checklist for a day",
	Long:  `Shows the tasks of a day (default today) ordered by priority, with the day's productivity.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runToday,
}

var addCmd = &cobra.Command{
	Use:   "add TEXT",
	Short: "Add a task to a day's schedule",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var doneCmd = &cobra.Command{
	Use:   "done DATE ID",
	Short: "Mark a task as completed",
	Long: `Marks a task as completed. ID is either the task ID or the 1-based position
shown by "streakd today". Use --undo to reopen the task.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // DATE and ID
	RunE: runDone,
}

func init() {
	addCmd.Flags().String("date", "today", "day to schedule on (YYYY-MM-DD, today, tomorrow)")
	addCmd.Flags().String("time", "", "time of day (HH:MM)")
	addCmd.Flags().String("priority", string(model.PriorityMedium), "priority (high, medium, low)")
	addCmd.Flags().String("category", string(model.CategoryPersonal), "category (study, work, health, personal)")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "cat":
			name = "category"
		case "prio":
			name = "priority"
		case "at":
			name = "time"
		}
		return pflag.NormalizedName(name)
	})
	doneCmd.Flags().Bool("undo", false, "mark the task as not completed")
	rootCmd.AddCommand(todayCmd, addCmd, doneCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	printWarnings(cmd.ErrOrStderr(), s.tracker.Warnings())

	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	key, err := resolveDate(arg, s.tracker.Now())
	if err != nil {
		return err
	}
	state := s.tracker.State()
	tasks := tracker.Checklist(state.Tasks.Get(key))
	productivity := analytics.Productivity(tasks)

	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{
			"date":         key,
			"productivity": productivity,
			"tasks":        nonNilTasks(tasks),
		})
	}
	output.TasksTable(cmd.OutOrStdout(), key, tasks, productivity)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	dateArg, _ := cmd.Flags().GetString("date")
	clock, _ := cmd.Flags().GetString("time")
	priority, _ := cmd.Flags().GetString("priority")
	category, _ := cmd.Flags().GetString("category")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	key, err := resolveDate(dateArg, s.tracker.Now())
	if err != nil {
		return err
	}
	task := model.TaskRecord{
		Text:     strings.Join(args, " "),
		Time:     clock,
		Priority: model.Priority(strings.ToLower(priority)),
		Category: model.Category(strings.ToLower(category)),
	}
	if err := task.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	state := s.tracker.State()
	schedule := append(state.Tasks.Get(key), task)
	saved, err := s.tracker.SaveSchedule(cmd.Context(), key, schedule)
	if err != nil {
		return mapError(err)
	}
	var added model.TaskRecord
	for _, t := range saved {
		if t.Text == task.Text && t.Time == task.Time && !containsID(state.Tasks.Get(key), t.ID) {
			added = t
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"status": "added", "date": key, "task": added})
	}
	output.Messagef(cmd.OutOrStdout(), "Added %q to %s", added.Text, key)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	undo, _ := cmd.Flags().GetBool("undo")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	key, err := resolveDate(args[0], s.tracker.Now())
	if err != nil {
		return err
	}
	state := s.tracker.State()
	id, err := resolveTaskID(tracker.Checklist(state.Tasks.Get(key)), args[1])
	if err != nil {
		return err
	}
	task, err := s.tracker.SetCompleted(cmd.Context(), key, id, !undo)
	if err != nil {
		return mapError(err)
	}
	after := s.tracker.State()

	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{
			"date":   key,
			"task":   task,
			"streak": after.Streak,
		})
	}
	verb := "Completed"
	if undo {
		verb = "Reopened"
	}
	output.Messagef(cmd.OutOrStdout(), "%s %q on %s (streak %d)", verb, task.Text, key, after.Streak.Count)
	return nil
}

// resolveTaskID maps a 1-based checklist position or a literal ID to an ID.
func resolveTaskID(checklist []model.TaskRecord, arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(checklist) {
		return checklist[n-1].ID, nil
	}
	if containsID(checklist, arg) {
		return arg, nil
	}
	return "", clierr.Newf(clierr.TaskNotFound, "no task %q on this day", arg)
}

func containsID(tasks []model.TaskRecord, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func nonNilTasks(tasks []model.TaskRecord) []model.TaskRecord {
	if tasks == nil {
		return []model.TaskRecord{}
	}
	return tasks
}
