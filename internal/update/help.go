package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/streakd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "switch to Today"},
		{Key: m.Keys.Focus, Action: "switch to Focus"},
		{Key: m.Keys.Analysis, Action: "switch to Analysis"},
		{Key: m.Keys.Achievements, Action: "switch to Achievements"},
		{Key: m.Keys.Journal, Action: "switch to Journal"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewToday:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space/x", Action: "toggle done"},
			{Key: "a", Action: "add task"},
			{Key: "p", Action: "copy yesterday's tasks"},
			{Key: "C/U", Action: "clone / unclone routine for the month"},
		}
	case ViewFocus:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "n", Action: "skip to next session"},
			{Key: "m", Action: "toggle pomodoro / long mode"},
			{Key: "e/t", Action: "edit task / use selected task"},
		}
	case ViewAnalysis:
		return []KeyBinding{
			{Key: "w/m/y/t/h", Action: "week/month/year/tree/history"},
			{Key: "[ ]", Action: "previous/next month"},
			{Key: "j/k", Action: "pick task in history"},
		}
	case ViewJournal:
		return []KeyBinding{
			{Key: "e", Action: "edit today's entry"},
			{Key: "a", Action: "save today's affirmation"},
			{Key: "ctrl+s/esc", Action: "save / cancel edit"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
