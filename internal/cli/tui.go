package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/streakd/internal/scheduler"
	"github.com/sandeepkv93/streakd/internal/update"
	"github.com/sandeepkv93/streakd/internal/watcher"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	engine := scheduler.NewEngine(s.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if s.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	model := update.NewModel(update.Options{
		Tracker:              s.tracker,
		Scheduler:            engine,
		Notifier:             notifier,
		DesktopNotifications: s.cfg.DesktopNotifications,
		Modes:                s.focusModes(),
		Context:              ctx,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	go startTUIWatcher(ctx, s.cfg.Database(), p)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, dbPath string, p *tea.Program) {
	w, err := watcher.ForDatabase(dbPath, func() {
		p.Send(update.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
