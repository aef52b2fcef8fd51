package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/streakd/internal/achievements"
	"github.com/sandeepkv93/streakd/internal/analytics"
	"github.com/sandeepkv93/streakd/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	categoryStyles = map[string]lipgloss.Style{
		"study":         lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"work":          lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		"health":        lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"personal":      lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
		"miscellaneous": lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
	}
)

const barWidth = 20

// TasksTable renders one day's checklist with 1-based positions.
func TasksTable(w io.Writer, key string, tasks []model.TaskRecord, productivity int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s  %d%%", key, productivity)))
	if len(tasks) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No tasks scheduled."))
		return
	}

	const pad = 2
	textW := 4
	for _, t := range tasks {
		textW = max(textW, min(lipgloss.Width(t.Text)+pad, 40)) //nolint:mnd // max text column width
	}
	header := fmt.Sprintf("%-3s %-4s %-6s %-*s %-8s %-14s %s",
		"#", "DONE", "TIME", textW, "TASK", "PRIORITY", "CATEGORY", "FOCUS")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for i, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = doneStyle.Render("[x]")
		}
		clock := t.Time
		if clock == "" {
			clock = dimStyle.Render("--")
		}
		text := t.Text
		const maxText = 38
		if len(text) > maxText {
			text = text[:maxText-3] + "..."
		}
		row := fmt.Sprintf("%-3d %s %s %s %s %s %s",
			i+1,
			padRight(mark, 4),
			padRight(clock, 6),
			padRight(text, textW),
			padRight(styledValue(string(t.Priority), priorityStyles), 8),
			padRight(styledValue(string(t.Category), categoryStyles), 14),
			FormatSeconds(t.PomodoroTime))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// StreakTable renders the running streak.
func StreakTable(w io.Writer, s model.DailyStreak, active bool) {
	printField(w, "Streak", strconv.Itoa(s.Count)+" days")
	printField(w, "Last", stringOrDash(s.LastCompletionDate))
	status := dimStyle.Render("inactive")
	if active {
		status = doneStyle.Render("active")
	}
	printField(w, "Status", status)
}

// TreeTable renders the rollup with indentation per level, latest first.
func TreeTable(w io.Writer, tree analytics.Tree) {
	if len(tree.Years) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No history yet."))
		return
	}
	for _, y := range tree.Years {
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render(strconv.Itoa(y.Year)), percentCell(y.Productivity))
		for _, m := range y.Months {
			fmt.Fprintf(w, "  %s %s\n", padRight(m.Month.String(), 12), percentCell(m.Productivity))
			for _, wk := range m.Weeks {
				fmt.Fprintf(w, "    %s %s\n", padRight("Week "+strconv.Itoa(wk.Week), 10), percentCell(wk.Productivity))
				for _, d := range wk.Days {
					total := len(model.NonBlank(d.Tasks))
					fmt.Fprintf(w, "      %s %s %s\n",
						d.Key, percentCell(d.Productivity),
						dimStyle.Render(fmt.Sprintf("%d/%d", d.Completed, total)))
				}
			}
		}
	}
}

// DaySeriesTable renders a per-day chart series with productivity bars.
func DaySeriesTable(w io.Writer, title string, points []analytics.DayPoint) {
	fmt.Fprintln(w, titleStyle.Render(title))
	header := fmt.Sprintf("%-10s %-5s %5s %5s %-*s %s", "DATE", "DAY", "DONE", "ALL", barWidth+6, "PRODUCTIVITY", "FOCUS")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, p := range points {
		fmt.Fprintf(w, "%-10s %-5s %5d %5d %s %s\n",
			p.Key, p.Label, p.Completed, p.Scheduled,
			padRight(Bar(p.Productivity)+" "+percentCell(p.Productivity), barWidth+6),
			FormatSeconds(p.FocusSeconds))
	}
}

// YearSeriesTable renders twelve month points.
func YearSeriesTable(w io.Writer, year int, points []analytics.MonthPoint) {
	fmt.Fprintln(w, titleStyle.Render(strconv.Itoa(year)))
	header := fmt.Sprintf("%-5s %5s %5s %-*s %s", "MONTH", "DONE", "ALL", barWidth+6, "PRODUCTIVITY", "FOCUS")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, p := range points {
		fmt.Fprintf(w, "%-5s %5d %5d %s %s\n",
			p.Label, p.Completed, p.Scheduled,
			padRight(Bar(p.Productivity)+" "+percentCell(p.Productivity), barWidth+6),
			FormatSeconds(p.FocusSeconds))
	}
}

// CategoryTable renders focused time per bucket in chart order.
func CategoryTable(w io.Writer, ct analytics.CategoryTime) {
	header := fmt.Sprintf("%-14s %s", "CATEGORY", "FOCUS")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, b := range analytics.Buckets {
		fmt.Fprintf(w, "%s %s\n", padRight(styledValue(string(b), categoryStyles), 14), FormatSeconds(ct[b]))
	}
	fmt.Fprintf(w, "%-14s %s\n", "total", FormatSeconds(ct.Total()))
}

// AchievementsTable renders the unlocked then locked achievements.
func AchievementsTable(w io.Writer, p achievements.Partition) {
	total := len(p.Unlocked) + len(p.Locked)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Achievements %d/%d", len(p.Unlocked), total)))
	for _, d := range p.Unlocked {
		fmt.Fprintf(w, "  %s %s %s\n", d.Icon, padRight(doneStyle.Render(d.Title), 24), d.Description)
	}
	for _, d := range p.Locked {
		fmt.Fprintf(w, "  %s %s %s\n", dimStyle.Render("--"), padRight(dimStyle.Render(d.Title), 24), dimStyle.Render(d.Description))
	}
}

// HistoryTable renders every instance of one task, latest first.
func HistoryTable(w io.Writer, h analytics.History) {
	fmt.Fprintln(w, titleStyle.Render(h.Name))
	if len(h.Instances) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No instances found."))
		return
	}
	printField(w, "Scheduled", strconv.Itoa(h.Scheduled))
	printField(w, "Completed", strconv.Itoa(h.Completed))
	printField(w, "Rate", percentCell(h.CompletionRate))
	printField(w, "Focus", FormatSeconds(h.FocusSeconds))
	fmt.Fprintln(w)

	header := fmt.Sprintf("%-10s %-6s %-10s %-4s %s", "DATE", "TIME", "WHEN", "DONE", "FOCUS")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, inst := range h.Instances {
		mark := "[ ]"
		if inst.Task.Completed {
			mark = doneStyle.Render("[x]")
		}
		clock := inst.Task.Time
		if clock == "" {
			clock = "--"
		}
		fmt.Fprintf(w, "%-10s %-6s %-10s %s %s\n",
			inst.Key, clock, inst.TimeOfDay, padRight(mark, 4), FormatSeconds(inst.Task.PomodoroTime))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// FormatSeconds renders seconds as "Xh Ym", "Ym" or "0m".
func FormatSeconds(seconds int) string {
	if seconds <= 0 {
		return "0m"
	}
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	if hours > 0 {
		return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	}
	return strconv.Itoa(minutes) + "m"
}

// Bar draws a fixed-width bar for a 0..100 percentage.
func Bar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := (percent*barWidth + 50) / 100
	return doneStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

func percentCell(p int) string {
	return strconv.Itoa(p) + "%"
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
