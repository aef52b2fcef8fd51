package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidCategory = errors.New("model: invalid task category")
	ErrInvalidTime     = errors.New("model: invalid task time")
)

// MiscellaneousTask is the task name focus time is logged against when no
// task name is given. Its time always lands in the miscellaneous bucket.
const MiscellaneousTask = "Miscellaneous"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for checklists; unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

type Category string

const (
	CategoryStudy    Category = "study"
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
	CategoryPersonal Category = "personal"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryStudy, CategoryWork, CategoryHealth, CategoryPersonal:
		return true
	default:
		return false
	}
}

// TaskRecord is one scheduled task inside a date bucket.
type TaskRecord struct {
	ID           string   `json:"id" yaml:"id"`
	Time         string   `json:"time" yaml:"time"`
	Text         string   `json:"text" yaml:"text"`
	Completed    bool     `json:"completed" yaml:"completed"`
	Priority     Priority `json:"priority" yaml:"priority"`
	Category     Category `json:"category" yaml:"category"`
	PomodoroTime int      `json:"pomodoroTime" yaml:"pomodoro_time"`
}

// IsBlank reports whether the record is a placeholder row with no text.
func (t TaskRecord) IsBlank() bool {
	return strings.TrimSpace(t.Text) == ""
}

// IsMiscellaneous reports whether focus time on this record belongs to the
// miscellaneous bucket. The match is case-sensitive.
func (t TaskRecord) IsMiscellaneous() bool {
	return t.Text == MiscellaneousTask
}

func (t TaskRecord) Validate() error {
	if t.IsBlank() {
		return errors.New("model: task text is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.Time != "" && !ValidClock(t.Time) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, t.Time)
	}
	if t.PomodoroTime < 0 {
		return errors.New("model: pomodoro time must not be negative")
	}
	return nil
}

// ValidClock reports whether s is a zero-padded 24h HH:MM value.
func ValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour < 24 && minute < 60
}

// Hour returns the hour component of the record's time, if any.
func (t TaskRecord) Hour() (int, bool) {
	if !ValidClock(t.Time) {
		return 0, false
	}
	return int(t.Time[0]-'0')*10 + int(t.Time[1]-'0'), true
}

// NonBlank filters placeholder rows out of tasks.
func NonBlank(tasks []TaskRecord) []TaskRecord {
	out := make([]TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsBlank() {
			out = append(out, t)
		}
	}
	return out
}

// IsPerfectDay reports whether tasks holds at least one real task and every
// real task is completed.
func IsPerfectDay(tasks []TaskRecord) bool {
	filtered := NonBlank(tasks)
	if len(filtered) == 0 {
		return false
	}
	for _, t := range filtered {
		if !t.Completed {
			return false
		}
	}
	return true
}
