// Package tracker owns the application state. Every mutation runs under the
// data-dir lock as load, apply, save, so the TUI and CLI invocations in
// other terminals never overwrite each other.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/streakd/internal/activity"
	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/filelock"
	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/storage"
	"github.com/sandeepkv93/streakd/internal/streak"
)

var (
	ErrTaskNotFound = errors.New("tracker: task not found")
	ErrUnknownTheme = errors.New("tracker: unknown theme")
	ErrNoTasks      = errors.New("tracker: no tasks to clone")
	ErrNoFocusTime  = errors.New("tracker: worked seconds must be positive")
)

type Options struct {
	Now          func() time.Time
	NewID        func() string
	Log          *activity.Log
	LockPath     string
	TrailingDays int
}

type Tracker struct {
	repo         storage.Repository
	now          func() time.Time
	newID        func() string
	log          *activity.Log
	lockPath     string
	trailingDays int

	mu       sync.Mutex
	state    model.State
	warnings []string
}

// Open loads the persisted state and ends a stale streak.
func Open(ctx context.Context, repo storage.Repository, opts Options) (*Tracker, error) {
	if repo == nil {
		return nil, errors.New("tracker: nil repository")
	}
	t := &Tracker{
		repo:         repo,
		now:          opts.Now,
		newID:        opts.NewID,
		log:          opts.Log,
		lockPath:     opts.LockPath,
		trailingDays: opts.TrailingDays,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	if t.log == nil {
		t.log = activity.Discard()
	}
	if t.trailingDays <= 0 {
		t.trailingDays = 7
	}
	if _, err := storage.PruneDocuments(ctx, repo); err != nil {
		return nil, err
	}
	if err := t.CheckStaleness(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// State returns a copy of the current state.
func (t *Tracker) State() model.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Warnings returns the load warnings of the most recent read.
func (t *Tracker) Warnings() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.warnings...)
}

func (t *Tracker) Now() time.Time {
	return t.now()
}

func (t *Tracker) TodayKey() string {
	return datekey.Today(t.now())
}

// Reload re-reads the persisted state without writing.
func (t *Tracker) Reload(ctx context.Context) error {
	state, warnings, err := storage.LoadSnapshot(ctx, t.repo)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.state, t.warnings = state, warnings
	t.mu.Unlock()
	return nil
}

// CheckStaleness ends the streak if its last perfect day is before
// yesterday. The snapshot is only written when the streak changed.
func (t *Tracker) CheckStaleness(ctx context.Context) error {
	return t.mutate(ctx, func(now time.Time, s *model.State) (*activity.Entry, error) {
		if !streak.CheckStaleness(s, now) {
			return nil, errUnchanged
		}
		return &activity.Entry{Action: "streak_reset", Date: datekey.Today(now)}, nil
	})
}

var errUnchanged = errors.New("unchanged")

// mutate applies fn to freshly loaded state under the data-dir lock and
// persists the result. fn returning errUnchanged skips the write.
func (t *Tracker) mutate(ctx context.Context, fn func(now time.Time, s *model.State) (*activity.Entry, error)) error {
	unlock, err := t.lock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	defer func() { _ = unlock() }()

	t.mu.Lock()
	defer t.mu.Unlock()

	state, warnings, err := storage.LoadSnapshot(ctx, t.repo)
	if err != nil {
		return err
	}
	now := t.now()
	entry, err := fn(now, &state)
	if errors.Is(err, errUnchanged) {
		t.state, t.warnings = state, warnings
		return nil
	}
	if err != nil {
		return err
	}
	if err := storage.SaveSnapshot(ctx, t.repo, state, now); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	t.state, t.warnings = state, warnings
	if entry != nil {
		entry.Timestamp = now
		_ = t.log.Append(*entry)
	}
	return nil
}

func (t *Tracker) lock() (func() error, error) {
	if t.lockPath == "" {
		return filelock.Noop()
	}
	return filelock.Lock(t.lockPath)
}

// SetCompleted flips the completion flag of one task and advances the
// streak if the day became perfect.
func (t *Tracker) SetCompleted(ctx context.Context, key, id string, done bool) (model.TaskRecord, error) {
	if _, err := datekey.Parse(key); err != nil {
		return model.TaskRecord{}, err
	}
	var out model.TaskRecord
	err := t.mutate(ctx, func(_ time.Time, s *model.State) (*activity.Entry, error) {
		tasks := s.Tasks[key]
		idx := indexOf(tasks, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s on %s", ErrTaskNotFound, id, key)
		}
		tasks[idx].Completed = done
		out = tasks[idx]
		streak.RecordCompletion(s, key)
		action := "uncomplete"
		if done {
			action = "complete"
		}
		return &activity.Entry{Action: action, Date: key, TaskID: id, Detail: out.Text}, nil
	})
	return out, err
}

// SaveSchedule replaces the tasks of one day. Blank rows are dropped,
// existing IDs keep their logged focus time, new rows get an ID, and the
// result is ordered by time. An empty schedule removes the day.
func (t *Tracker) SaveSchedule(ctx context.Context, key string, tasks []model.TaskRecord) ([]model.TaskRecord, error) {
	if _, err := datekey.Parse(key); err != nil {
		return nil, err
	}
	cleaned := make([]model.TaskRecord, 0, len(tasks))
	for _, task := range tasks {
		task.Text = strings.TrimSpace(task.Text)
		if task.Text == "" {
			continue
		}
		if task.Priority == "" {
			task.Priority = model.PriorityMedium
		}
		if task.Category == "" {
			task.Category = model.CategoryPersonal
		}
		task.PomodoroTime = 0
		if err := task.Validate(); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, task)
	}

	var out []model.TaskRecord
	err := t.mutate(ctx, func(_ time.Time, s *model.State) (*activity.Entry, error) {
		existing := s.Tasks[key]
		for i := range cleaned {
			if cleaned[i].ID == "" {
				cleaned[i].ID = t.newID()
				continue
			}
			if idx := indexOf(existing, cleaned[i].ID); idx >= 0 {
				cleaned[i].PomodoroTime = existing[idx].PomodoroTime
			}
		}
		sort.SliceStable(cleaned, func(i, j int) bool { return cleaned[i].Time < cleaned[j].Time })
		if len(cleaned) == 0 {
			delete(s.Tasks, key)
		} else {
			s.Tasks[key] = cleaned
		}
		streak.RecordCompletion(s, key)
		out = append([]model.TaskRecord(nil), cleaned...)
		return &activity.Entry{Action: "schedule", Date: key, Detail: fmt.Sprintf("%d tasks", len(cleaned))}, nil
	})
	return out, err
}

// LogFocus adds worked seconds to today's task named name, matched without
// regard to case. A missing task is created. An empty name logs against
// the miscellaneous task.
func (t *Tracker) LogFocus(ctx context.Context, name string, seconds int) (model.TaskRecord, error) {
	if seconds <= 0 {
		return model.TaskRecord{}, ErrNoFocusTime
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = model.MiscellaneousTask
	}
	var out model.TaskRecord
	err := t.mutate(ctx, func(now time.Time, s *model.State) (*activity.Entry, error) {
		key := datekey.Today(now)
		tasks := s.Tasks[key]
		idx := -1
		for i := range tasks {
			if strings.EqualFold(tasks[i].Text, name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			category := model.CategoryStudy
			if name == model.MiscellaneousTask {
				category = model.CategoryPersonal
			}
			tasks = append(tasks, model.TaskRecord{
				ID:       t.newID(),
				Time:     now.Format("15:04"),
				Text:     name,
				Priority: model.PriorityMedium,
				Category: category,
			})
			idx = len(tasks) - 1
		}
		tasks[idx].PomodoroTime += seconds
		s.Tasks[key] = tasks
		out = tasks[idx]
		return &activity.Entry{Action: "focus", Date: key, TaskID: out.ID, Detail: fmt.Sprintf("%s +%ds", name, seconds)}, nil
	})
	return out, err
}

// SaveJournal stores text for key. Blank text removes the entry.
func (t *Tracker) SaveJournal(ctx context.Context, key, text string) error {
	if _, err := datekey.Parse(key); err != nil {
		return err
	}
	return t.mutate(ctx, func(_ time.Time, s *model.State) (*activity.Entry, error) {
		if strings.TrimSpace(text) == "" {
			delete(s.Journal, key)
			return &activity.Entry{Action: "journal_delete", Date: key}, nil
		}
		s.Journal[key] = text
		return &activity.Entry{Action: "journal", Date: key}, nil
	})
}

// AppendAffirmation appends a timestamped affirmation block to today's
// journal entry.
func (t *Tracker) AppendAffirmation(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("tracker: affirmation text is required")
	}
	var out string
	err := t.mutate(ctx, func(now time.Time, s *model.State) (*activity.Entry, error) {
		key := datekey.Today(now)
		out = s.Journal[key] + fmt.Sprintf("\n\n---\nSaved Affirmation (%s):\n%s", now.Format("03:04 PM"), text)
		s.Journal[key] = out
		return &activity.Entry{Action: "affirmation", Date: key}, nil
	})
	return out, err
}

// SaveTheme stores a custom theme. Preset keys cannot be overwritten.
func (t *Tracker) SaveTheme(ctx context.Context, key string, theme model.Theme) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrUnknownTheme)
	}
	if _, preset := model.PresetThemes[key]; preset {
		return fmt.Errorf("%w: %q is a preset", ErrUnknownTheme, key)
	}
	if err := theme.Validate(); err != nil {
		return err
	}
	return t.mutate(ctx, func(_ time.Time, s *model.State) (*activity.Entry, error) {
		s.Themes[key] = theme.Clone()
		return &activity.Entry{Action: "theme_save", Detail: key}, nil
	})
}

// DeleteTheme removes a custom theme, falling back to the default theme if
// it was selected.
func (t *Tracker) DeleteTheme(ctx context.Context, key string) error {
	return t.mutate(ctx, func(_ time.Time, s *model.State) (*activity.Entry, error) {
		if _, ok := s.Themes[key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, key)
		}
		delete(s.Themes, key)
		if s.SelectedTheme == key {
			s.SelectedTheme = model.DefaultThemeKey
		}
		return &activity.Entry{Action: "theme_delete", Detail: key}, nil
	})
}

func (t *Tracker) SelectTheme(ctx context.Context, key string) error {
	return t.mutate(ctx, func(_ time.Time, s *model.State) (*activity.Entry, error) {
		_, preset := model.PresetThemes[key]
		_, custom := s.Themes[key]
		if !preset && !custom {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, key)
		}
		s.SelectedTheme = key
		return &activity.Entry{Action: "theme_select", Detail: key}, nil
	})
}

// Checklist orders tasks by priority, keeping the time order within a
// priority.
func Checklist(tasks []model.TaskRecord) []model.TaskRecord {
	out := model.NonBlank(tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

func indexOf(tasks []model.TaskRecord, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
