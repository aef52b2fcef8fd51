package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/output"
)

var themeCmd = &cobra.Command{
	Use:   "theme [KEY]",
	Short: "List themes or select one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

var themeSaveCmd = &cobra.Command{
	Use:   "save KEY NAME",
	Short: "Save a custom theme",
	Long:  `Saves a custom theme. Colors are given as --color var=#hex and may repeat.`,
	Args:  cobra.ExactArgs(2), //nolint:mnd // KEY and NAME
	RunE:  runThemeSave,
}

var themeDeleteCmd = &cobra.Command{
	Use:     "delete KEY",
	Aliases: []string{"rm"},
	Short:   "Delete a custom theme",
	Args:    cobra.ExactArgs(1),
	RunE:    runThemeDelete,
}

func init() {
	themeSaveCmd.Flags().StringToString("color", nil, "CSS variable to hex color (repeatable)")
	themeCmd.AddCommand(themeSaveCmd, themeDeleteCmd)
	rootCmd.AddCommand(themeCmd)
}

type themeRow struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Custom   bool   `json:"custom"`
	Selected bool   `json:"selected"`
}

func runTheme(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		if err := s.tracker.SelectTheme(cmd.Context(), args[0]); err != nil {
			return mapError(err)
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(cmd.OutOrStdout(), map[string]any{"status": "selected", "theme": args[0]})
		}
		output.Messagef(cmd.OutOrStdout(), "Selected theme %s", args[0])
		return nil
	}

	state := s.tracker.State()
	rows := make([]themeRow, 0, len(model.PresetThemes)+len(state.Themes))
	for key, t := range model.PresetThemes {
		rows = append(rows, themeRow{Key: key, Name: t.Name, Selected: key == state.SelectedTheme})
	}
	for key, t := range state.Themes {
		rows = append(rows, themeRow{Key: key, Name: t.Name, Custom: true, Selected: key == state.SelectedTheme})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Custom != rows[j].Custom {
			return !rows[i].Custom
		}
		return rows[i].Key < rows[j].Key
	})

	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), rows)
	}
	for _, r := range rows {
		mark := " "
		if r.Selected {
			mark = "*"
		}
		kind := "preset"
		if r.Custom {
			kind = "custom"
		}
		output.Messagef(cmd.OutOrStdout(), "%s %-12s %-20s %s", mark, r.Key, r.Name, kind)
	}
	return nil
}

func runThemeSave(cmd *cobra.Command, args []string) error {
	colors, _ := cmd.Flags().GetStringToString("color")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	theme := model.Theme{Name: args[1], Colors: colors}
	if err := s.tracker.SaveTheme(cmd.Context(), args[0], theme); err != nil {
		return mapError(err)
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"status": "saved", "theme": args[0]})
	}
	output.Messagef(cmd.OutOrStdout(), "Saved theme %s", args[0])
	return nil
}

func runThemeDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tracker.DeleteTheme(cmd.Context(), args[0]); err != nil {
		return mapError(err)
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"status": "deleted", "theme": args[0]})
	}
	output.Messagef(cmd.OutOrStdout(), "Deleted theme %s", args[0])
	return nil
}
