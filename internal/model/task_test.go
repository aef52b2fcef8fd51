package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := TaskRecord{
		ID:       "task-1",
		Time:     "09:30",
		Text:     "Read chapter 4",
		Priority: PriorityHigh,
		Category: CategoryStudy,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := TaskRecord{Text: "Bad", Priority: Priority("urgent"), Category: CategoryWork}
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityLow
	task.Category = Category("chores")
	if err := task.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got: %v", err)
	}

	task.Category = CategoryHealth
	task.Time = "25:00"
	if err := task.Validate(); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got: %v", err)
	}
}

func TestTaskValidateBlankText(t *testing.T) {
	task := TaskRecord{Text: "   ", Priority: PriorityLow, Category: CategoryWork}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestIsPerfectDay(t *testing.T) {
	cases := []struct {
		name  string
		tasks []TaskRecord
		want  bool
	}{
		{"empty", nil, false},
		{"only placeholders", []TaskRecord{{Text: ""}, {Text: " "}}, false},
		{"all done", []TaskRecord{{Text: "a", Completed: true}, {Text: "b", Completed: true}}, true},
		{"placeholder ignored", []TaskRecord{{Text: "a", Completed: true}, {Text: ""}}, true},
		{"one open", []TaskRecord{{Text: "a", Completed: true}, {Text: "b"}}, false},
	}
	for _, tc := range cases {
		if got := IsPerfectDay(tc.tasks); got != tc.want {
			t.Fatalf("%s: IsPerfectDay = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTaskStoreGetSkipsBlank(t *testing.T) {
	store := TaskStore{"2024-01-01": {{Text: "a"}, {Text: ""}, {Text: "b"}}}
	if got := len(store.Get("2024-01-01")); got != 2 {
		t.Fatalf("expected 2 tasks, got %d", got)
	}
	if got := len(store.Get("2024-01-02")); got != 0 {
		t.Fatalf("expected no tasks for missing key, got %d", got)
	}
}

func TestStateNormalizeRepairsStreak(t *testing.T) {
	s := State{Streak: DailyStreak{Count: 3}}
	s.Normalize()
	if s.Streak.Count != 0 || s.Tasks == nil || s.Journal == nil || s.Themes == nil {
		t.Fatalf("unexpected normalized state: %+v", s)
	}
	if s.SelectedTheme != DefaultThemeKey {
		t.Fatalf("expected default theme, got %q", s.SelectedTheme)
	}
}

func TestResolveTheme(t *testing.T) {
	custom := map[string]Theme{"ocean": {Name: "Ocean", Colors: map[string]string{"--primary": "#006994"}}}
	if got := ResolveTheme("ocean", custom).Primary(); got != "#006994" {
		t.Fatalf("unexpected custom primary: %q", got)
	}
	if got := ResolveTheme("missing", custom).Name; got != "Default Blue" {
		t.Fatalf("expected default fallback, got %q", got)
	}
}
