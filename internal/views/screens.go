package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/streakd/internal/output"
)

type ChecklistItem struct {
	Text      string
	Time      string
	Priority  string
	Category  string
	Completed bool
	Focus     int
}

type TodayPanelData struct {
	Date         string
	Items        []ChecklistItem
	Cursor       int
	Productivity int
	AddView      string
}

type TaskDetailData struct {
	Text           string
	Priority       string
	Category       string
	Time           string
	Focus          int
	Scheduled      int
	Completed      int
	CompletionRate int
}

type FocusPanelData struct {
	TaskView     string
	Mode         string
	Session      string
	Timer        string
	Running      bool
	ProgressView string
	Completed    int
}

type FocusLogEntry struct {
	Text    string
	Seconds int
}

type SeriesRow struct {
	Label        string
	Scheduled    int
	Completed    int
	Productivity int
	Focus        int
}

type TreeLine struct {
	Depth        int
	Label        string
	Productivity int
	Tasks        int
}

type HistoryRow struct {
	Date      string
	TimeOfDay string
	Completed bool
	Focus     int
}

type AnalysisPanelData struct {
	Tab        string
	Title      string
	Rows       []SeriesRow
	Tree       []TreeLine
	Names      []string
	NameCursor int
	History    []HistoryRow
	Footer     string
}

type CategoryRow struct {
	Name    string
	Seconds int
	Share   float64
}

type AchievementEntry struct {
	Icon        string
	Title       string
	Description string
	Unlocked    bool
}

type AchievementsPanelData struct {
	Unlocked []AchievementEntry
	Locked   []AchievementEntry
}

type StreakPanelData struct {
	Count          int
	LastCompletion string
	Active         bool
	Today          int
}

type JournalPanelData struct {
	Date    string
	Body    string
	Editing bool
	Words   int
	Entries int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s | %d%% done\n", data.Date, data.Productivity))
	b.WriteString("actions: [j/k]move [space]toggle [a]add [p]copy yesterday\n")
	if data.AddView != "" {
		b.WriteString(data.AddView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("\n(no tasks scheduled; press [a] to add one)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString("\n")
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		when := item.Time
		if when == "" {
			when = "--:--"
		}
		line := fmt.Sprintf("%s %d. %s %s %s %s", cursor, i+1, check, when, priorityBadge(item.Priority), item.Text)
		if item.Category != "" {
			line += " #" + item.Category
		}
		if item.Focus > 0 {
			line += " (" + output.FormatSeconds(item.Focus) + ")"
		}
		if item.Completed {
			line = dimStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(data TaskDetailData) string {
	when := data.Time
	if when == "" {
		when = "anytime"
	}
	return fmt.Sprintf("task:\n%s\n\npriority: %s\ncategory: %s\ntime: %s\nfocused today: %s\n\nall-time: %d/%d done (%d%%)",
		data.Text,
		data.Priority,
		data.Category,
		when,
		output.FormatSeconds(data.Focus),
		data.Completed,
		data.Scheduled,
		data.CompletionRate,
	)
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	b.WriteString(fmt.Sprintf("task: %s\n", data.TaskView))
	b.WriteString(fmt.Sprintf("mode: %s | session: %s\n", data.Mode, strings.ToUpper(data.Session)))
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("timer: %s (%s)\n", data.Timer, state))
	b.WriteString(data.ProgressView + "\n")
	b.WriteString(fmt.Sprintf("work sessions completed: %d\n", data.Completed))
	b.WriteString("actions: [space]start/pause [r]reset [n]skip [m]mode [e]task")
	return b.String()
}

func RenderFocusLog(entries []FocusLogEntry) string {
	var b strings.Builder
	b.WriteString("focused today:\n")
	if len(entries) == 0 {
		b.WriteString("(nothing logged yet)")
		return b.String()
	}
	total := 0
	for _, e := range entries {
		total += e.Seconds
		b.WriteString(fmt.Sprintf("- %s: %s\n", e.Text, output.FormatSeconds(e.Seconds)))
	}
	b.WriteString(fmt.Sprintf("\ntotal: %s", output.FormatSeconds(total)))
	return b.String()
}

func RenderAnalysisPanel(data AnalysisPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("analysis: %s\n", data.Title))
	b.WriteString("tabs: [w]eek [m]onth [y]ear [t]ree [h]istory | [ ] month\n\n")
	switch {
	case data.Tab == "tree":
		if len(data.Tree) == 0 {
			b.WriteString("(no history yet)")
		}
		for _, l := range data.Tree {
			b.WriteString(fmt.Sprintf("%s%s  %d%% of %d\n", strings.Repeat("  ", l.Depth), l.Label, l.Productivity, l.Tasks))
		}
	case data.Tab == "history":
		if len(data.Names) == 0 {
			b.WriteString("(no tasks yet)")
			break
		}
		for i, name := range data.Names {
			cursor := " "
			if i == data.NameCursor {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, name))
		}
		b.WriteString("\n")
		for _, h := range data.History {
			mark := " "
			if h.Completed {
				mark = "x"
			}
			b.WriteString(fmt.Sprintf("[%s] %s %-9s %s\n", mark, h.Date, h.TimeOfDay, output.FormatSeconds(h.Focus)))
		}
		if data.Footer != "" {
			b.WriteString(data.Footer)
		}
	default:
		for _, r := range data.Rows {
			b.WriteString(fmt.Sprintf("%-4s %s %3d%% %d/%d %s\n",
				r.Label, output.Bar(r.Productivity), r.Productivity, r.Completed, r.Scheduled, output.FormatSeconds(r.Focus)))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCategoryPanel(rows []CategoryRow, total int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("time by category (total %s):\n", output.FormatSeconds(total)))
	for _, r := range rows {
		pct := int(r.Share*100 + 0.5)
		b.WriteString(fmt.Sprintf("%-13s %s %3d%% %s\n", r.Name, output.Bar(pct), pct, output.FormatSeconds(r.Seconds)))
	}
	return strings.TrimSpace(b.String())
}

func RenderAchievementsPanel(data AchievementsPanelData) string {
	var b strings.Builder
	total := len(data.Unlocked) + len(data.Locked)
	b.WriteString(fmt.Sprintf("achievements: %d/%d\n", len(data.Unlocked), total))
	for _, a := range data.Unlocked {
		b.WriteString(fmt.Sprintf("%s %s: %s\n", a.Icon, a.Title, a.Description))
	}
	if len(data.Locked) > 0 {
		b.WriteString("\nlocked:\n")
		for _, a := range data.Locked {
			b.WriteString(dimStyle.Render(fmt.Sprintf("🔒 %s: %s", a.Title, a.Description)) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderStreakPanel(data StreakPanelData) string {
	last := data.LastCompletion
	if last == "" {
		last = "never"
	}
	state := "broken"
	if data.Active {
		state = "active"
	}
	return fmt.Sprintf("streak:\n%d day(s), %s\nlast perfect day: %s\ntoday: %s %d%%",
		data.Count, state, last, output.Bar(data.Today), data.Today)
}

func RenderJournalPanel(data JournalPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("journal: %s\n", data.Date))
	if data.Editing {
		b.WriteString("keys: [ctrl+s]save [esc]cancel\n\n")
	} else {
		b.WriteString("keys: [e]edit [a]save affirmation\n\n")
	}
	if strings.TrimSpace(data.Body) == "" {
		b.WriteString("(no entry for today)")
	} else {
		b.WriteString(data.Body)
	}
	b.WriteString(fmt.Sprintf("\n\n%d words | %d entries", data.Words, data.Entries))
	return b.String()
}

func RenderAffirmationPanel(text string) string {
	return fmt.Sprintf("affirmation of the day:\n\n%q", text)
}

func RenderCommandPalette(inputView string) string {
	return "command: " + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func priorityBadge(p string) string {
	switch p {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
