package analytics

import (
	"sort"
	"strings"

	"github.com/sandeepkv93/streakd/internal/model"
)

type TimeOfDay string

const (
	Anytime   TimeOfDay = "Anytime"
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Evening   TimeOfDay = "Evening"
)

// ClassifyTime buckets an HH:MM value. Records without a time are Anytime.
func ClassifyTime(t model.TaskRecord) TimeOfDay {
	hour, ok := t.Hour()
	switch {
	case !ok:
		return Anytime
	case hour < 12:
		return Morning
	case hour < 17:
		return Afternoon
	default:
		return Evening
	}
}

// TaskInstance is one scheduled occurrence of a named task.
type TaskInstance struct {
	Key       string
	Task      model.TaskRecord
	TimeOfDay TimeOfDay
}

type History struct {
	Name           string
	Instances      []TaskInstance
	Scheduled      int
	Completed      int
	CompletionRate int
	FocusSeconds   int
}

// TaskHistory collects every instance whose text equals name across the
// whole store, latest date first.
func TaskHistory(store model.TaskStore, name string) History {
	h := History{Name: name}
	if strings.TrimSpace(name) == "" {
		return h
	}
	var tasks []model.TaskRecord
	for _, key := range store.Keys() {
		for _, t := range store.Get(key) {
			if t.Text != name {
				continue
			}
			tasks = append(tasks, t)
			h.Instances = append(h.Instances, TaskInstance{Key: key, Task: t, TimeOfDay: ClassifyTime(t)})
		}
	}
	sort.SliceStable(h.Instances, func(i, j int) bool {
		return h.Instances[i].Key > h.Instances[j].Key
	})
	h.Scheduled, h.Completed = Counts(tasks)
	h.CompletionRate = Productivity(tasks)
	h.FocusSeconds = FocusSeconds(tasks)
	return h
}

// TaskNames returns the distinct task names in the store, sorted.
func TaskNames(store model.TaskStore) []string {
	seen := make(map[string]struct{})
	for _, t := range store.All() {
		seen[t.Text] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
