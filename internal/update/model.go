package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/streakd/internal/focus"
	"github.com/sandeepkv93/streakd/internal/scheduler"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

type View string

const (
	ViewToday        View = "Today"
	ViewFocus        View = "Focus"
	ViewAnalysis     View = "Analysis"
	ViewAchievements View = "Achievements"
	ViewJournal      View = "Journal"
)

type AnalysisTab string

const (
	TabWeek    AnalysisTab = "week"
	TabMonth   AnalysisTab = "month"
	TabYear    AnalysisTab = "year"
	TabTree    AnalysisTab = "tree"
	TabHistory AnalysisTab = "history"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today        string
	Focus        string
	Analysis     string
	Achievements string
	Journal      string
	Help         string
	Quit         string
}

type Model struct {
	CurrentView    View
	Tracker        *tracker.Tracker
	Report         tracker.Report
	Today          TodayState
	Focus          FocusState
	Analysis       AnalysisState
	Journal        JournalState
	Scheduler      *scheduler.Engine
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx          context.Context
	commandInput textinput.Model
	addInput     textinput.Model
	taskInput    textinput.Model
	journalArea  textarea.Model
	progressBar  progress.Model
	helpModel    help.Model
}

type TodayState struct {
	Cursor int
	Adding bool
}

type FocusState struct {
	Timer       focus.Timer
	TaskName    string
	EditingTask bool
	TickSeq     int
}

type AnalysisState struct {
	Tab          AnalysisTab
	Month        time.Time
	HistoryIndex int
}

type JournalState struct {
	Editing bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// FocusTickMsg is one second of the focus countdown. Seq ties it to the
// tick chain that produced it.
type FocusTickMsg struct {
	Seq int
}

// SchedulerEventMsg carries an event fired by the scheduler engine.
type SchedulerEventMsg struct {
	Event scheduler.Event
}

// ReloadMsg asks the model to re-read the database after another process
// changed it.
type ReloadMsg struct{}

type Options struct {
	Tracker              *tracker.Tracker
	Scheduler            *scheduler.Engine
	Notifier             DesktopNotifier
	DesktopNotifications bool
	Modes                focus.Modes
	Context              context.Context
}

func NewModel(opts Options) Model {
	m := Model{
		CurrentView:    ViewToday,
		Tracker:        opts.Tracker,
		Scheduler:      opts.Scheduler,
		DesktopEnabled: opts.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		ctx:            opts.Context,
		Focus:          FocusState{Timer: focus.NewTimer(opts.Modes)},
		Analysis:       AnalysisState{Tab: TabWeek},
		Keys: GlobalKeyMap{
			Today:        "1",
			Focus:        "2",
			Analysis:     "3",
			Achievements: "4",
			Journal:      "5",
			Help:         "?",
			Quit:         "q",
		},
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	m.initBubbleComponents()
	m.refresh()
	for _, w := range m.trackerWarnings() {
		m.notify("Load warning", w, "error")
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "09:00 Read chapter !high #study"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.Placeholder = "Miscellaneous"
	m.taskInput.CharLimit = 128
	m.taskInput.Width = 40

	m.journalArea = textarea.New()
	m.journalArea.SetWidth(54)
	m.journalArea.SetHeight(10)
	m.journalArea.ShowLineNumbers = false
	m.journalArea.Placeholder = "How did today go? (markdown)"

	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.helpModel = help.New()
}

// refresh recomputes the report from the tracker's current state.
func (m *Model) refresh() {
	if m.Tracker == nil {
		return
	}
	m.Report = m.Tracker.Report(m.Analysis.Month)
	if m.Today.Cursor >= len(m.Report.TodayTasks) {
		m.Today.Cursor = max(len(m.Report.TodayTasks)-1, 0)
	}
	if m.Analysis.HistoryIndex >= len(m.Report.TaskNames) {
		m.Analysis.HistoryIndex = 0
	}
}

func (m Model) trackerWarnings() []string {
	if m.Tracker == nil {
		return nil
	}
	return m.Tracker.Warnings()
}

func (m Model) now() time.Time {
	if m.Tracker == nil {
		return time.Now()
	}
	return m.Tracker.Now()
}
