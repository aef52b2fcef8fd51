package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/streakd/internal/tracker"
	"github.com/sandeepkv93/streakd/internal/views"
)

func (m Model) handleJournalKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "e":
		m.Journal.Editing = true
		m.journalArea.SetValue(m.Report.Journal[m.Report.Today])
		m.journalArea.Focus()
		m.Status = StatusBar{Text: "editing journal: ctrl+s to save, esc to cancel"}
	case "a":
		m.runMutation(func() (string, error) {
			_, err := m.Tracker.AppendAffirmation(m.ctx, tracker.DailyAffirmation(m.now()))
			return "affirmation saved to journal", err
		})
	}
	return m
}

func (m Model) handleJournalEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Journal.Editing = false
		m.journalArea.Blur()
		m.Status = StatusBar{Text: "journal edit cancelled"}
		return m, nil
	case "ctrl+s":
		text := m.journalArea.Value()
		m.Journal.Editing = false
		m.journalArea.Blur()
		m.runMutation(func() (string, error) {
			return "journal saved", m.Tracker.SaveJournal(m.ctx, m.Report.Today, text)
		})
		return m, nil
	}
	var cmd tea.Cmd
	m.journalArea, cmd = m.journalArea.Update(msg)
	return m, cmd
}

func (m Model) renderJournalView() string {
	body := m.Report.Journal[m.Report.Today]
	rendered := views.RenderMarkdown(body)
	if m.Journal.Editing {
		rendered = m.journalArea.View()
	}
	return views.RenderJournalPanel(views.JournalPanelData{
		Date:    m.Report.Today,
		Body:    rendered,
		Editing: m.Journal.Editing,
		Words:   len(strings.Fields(body)),
		Entries: len(m.Report.Journal),
	})
}

func (m Model) renderAffirmationPane() string {
	return views.RenderAffirmationPanel(tracker.DailyAffirmation(m.now()))
}
