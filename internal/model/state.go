package model

import (
	"sort"
)

// DailyStreak is the running perfect-day streak.
type DailyStreak struct {
	Count              int    `json:"count" yaml:"count"`
	LastCompletionDate string `json:"lastCompletionDate,omitempty" yaml:"last_completion_date,omitempty"`
}

// Valid reports whether the streak respects count > 0 => last date set.
func (s DailyStreak) Valid() bool {
	if s.Count < 0 {
		return false
	}
	return s.Count == 0 || s.LastCompletionDate != ""
}

// TaskStore maps a date key to the ordered tasks scheduled on that day.
type TaskStore map[string][]TaskRecord

// Get returns the non-blank tasks stored under key.
func (s TaskStore) Get(key string) []TaskRecord {
	return NonBlank(s[key])
}

// Keys returns every date key in ascending string order.
func (s TaskStore) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All flattens every non-blank task in the store, in ascending key order.
func (s TaskStore) All() []TaskRecord {
	out := make([]TaskRecord, 0)
	for _, k := range s.Keys() {
		out = append(out, s.Get(k)...)
	}
	return out
}

// Clone deep-copies the store so callers can mutate buckets freely.
func (s TaskStore) Clone() TaskStore {
	out := make(TaskStore, len(s))
	for k, tasks := range s {
		out[k] = append([]TaskRecord(nil), tasks...)
	}
	return out
}

// State is the whole application state the analytics engine reads.
type State struct {
	Tasks         TaskStore         `json:"tasks" yaml:"tasks"`
	Journal       map[string]string `json:"journal" yaml:"journal"`
	Themes        map[string]Theme  `json:"customThemes" yaml:"custom_themes"`
	Streak        DailyStreak       `json:"dailyStreak" yaml:"daily_streak"`
	SelectedTheme string            `json:"selectedTheme" yaml:"selected_theme"`
}

// NewState returns an empty state with all maps allocated.
func NewState() State {
	return State{
		Tasks:         make(TaskStore),
		Journal:       make(map[string]string),
		Themes:        make(map[string]Theme),
		SelectedTheme: DefaultThemeKey,
	}
}

// Normalize replaces nil maps and invalid streaks with empty defaults.
func (s *State) Normalize() {
	if s.Tasks == nil {
		s.Tasks = make(TaskStore)
	}
	if s.Journal == nil {
		s.Journal = make(map[string]string)
	}
	if s.Themes == nil {
		s.Themes = make(map[string]Theme)
	}
	if !s.Streak.Valid() {
		s.Streak = DailyStreak{}
	}
	if s.SelectedTheme == "" {
		s.SelectedTheme = DefaultThemeKey
	}
}

// Clone deep-copies the state.
func (s State) Clone() State {
	out := State{
		Tasks:         s.Tasks.Clone(),
		Journal:       make(map[string]string, len(s.Journal)),
		Themes:        make(map[string]Theme, len(s.Themes)),
		Streak:        s.Streak,
		SelectedTheme: s.SelectedTheme,
	}
	for k, v := range s.Journal {
		out.Journal[k] = v
	}
	for k, v := range s.Themes {
		out.Themes[k] = v.Clone()
	}
	return out
}
