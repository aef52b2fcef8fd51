package achievements

import (
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
)

func ids(defs []Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}

func weekOfPerfectDays(state *model.State, start time.Time) []string {
	keys := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		key := datekey.Format(start.AddDate(0, 0, i))
		state.Tasks[key] = []model.TaskRecord{
			{ID: key + "-a", Text: "Read", Completed: true, Priority: model.PriorityHigh, Category: model.CategoryStudy},
			{ID: key + "-b", Text: "Gym", Completed: true, Priority: model.PriorityLow, Category: model.CategoryHealth},
		}
		keys = append(keys, key)
	}
	return keys
}

func TestCatalogIsUniqueAndComplete(t *testing.T) {
	defs := Catalog()
	if len(defs) != 29 {
		t.Fatalf("expected 29 achievements, got %d", len(defs))
	}
	seen := make(map[string]bool)
	for _, d := range defs {
		if d.ID == "" || d.Title == "" || d.Description == "" || d.Icon == "" || d.Predicate == nil {
			t.Fatalf("incomplete definition: %+v", d)
		}
		if seen[d.ID] {
			t.Fatalf("duplicate id %q", d.ID)
		}
		seen[d.ID] = true
	}
}

func TestEvaluateAllEmptyStateLocksEverything(t *testing.T) {
	state := model.NewState()
	p := EvaluateAll(&state)
	if len(p.Unlocked) != 0 || len(p.Locked) != len(Catalog()) {
		t.Fatalf("expected all locked, got %d unlocked", len(p.Unlocked))
	}
	if !reflect.DeepEqual(ids(p.Locked), ids(Catalog())) {
		t.Fatal("locked partition lost catalog order")
	}
}

func TestEvaluateAllDeterministic(t *testing.T) {
	state := model.NewState()
	weekOfPerfectDays(&state, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local))
	state.Journal["2024-05-01"] = "hello"
	state.Themes["ocean"] = model.Theme{Name: "Ocean"}
	state.Streak = model.DailyStreak{Count: 7, LastCompletionDate: "2024-05-07"}

	first := EvaluateAll(&state)
	second := EvaluateAll(&state)
	if !reflect.DeepEqual(ids(first.Unlocked), ids(second.Unlocked)) || !reflect.DeepEqual(ids(first.Locked), ids(second.Locked)) {
		t.Fatalf("partitions differ between runs: %v vs %v", ids(first.Unlocked), ids(second.Unlocked))
	}

	want := []string{"first-task", "first-journal", "first-theme", "planner", "ten-tasks", "perfect-day", "streak-3", "streak-7", "perfect-week"}
	if got := ids(first.Unlocked); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected unlocked set\n got %v\nwant %v", got, want)
	}
	if len(first.Unlocked)+len(first.Locked) != len(Catalog()) {
		t.Fatal("partition does not cover the catalog")
	}
}

func TestPerfectWeek(t *testing.T) {
	state := model.NewState()
	keys := weekOfPerfectDays(&state, time.Date(2024, time.February, 26, 0, 0, 0, 0, time.Local))
	if !NewSnapshot(&state).PerfectWeek {
		t.Fatal("expected perfect week across the leap day")
	}

	for _, key := range keys {
		state.Tasks[key][1].Completed = false
		if NewSnapshot(&state).PerfectWeek {
			t.Fatalf("expected no perfect week with %s incomplete", key)
		}
		state.Tasks[key][1].Completed = true
	}

	delete(state.Tasks, keys[3])
	if NewSnapshot(&state).PerfectWeek {
		t.Fatal("expected gap to break the week")
	}
}

func TestJournalRun(t *testing.T) {
	state := model.NewState()
	start := time.Date(2023, time.December, 28, 0, 0, 0, 0, time.Local)
	for i := 0; i < 6; i++ {
		state.Journal[datekey.Format(start.AddDate(0, 0, i))] = "entry"
	}
	state.Journal["not-a-date"] = "ignored"
	if EvaluateAll(&state).IsUnlocked("journal-week") {
		t.Fatal("six days must not unlock the journal run")
	}
	state.Journal[datekey.Format(start.AddDate(0, 0, 6))] = "entry"
	p := EvaluateAll(&state)
	if !p.IsUnlocked("journal-week") || !p.IsUnlocked("first-journal") {
		t.Fatalf("expected journal achievements, got %v", ids(p.Unlocked))
	}
}

func TestLongestRun(t *testing.T) {
	cases := []struct {
		days []int
		want int
	}{
		{nil, 0},
		{[]int{5}, 1},
		{[]int{3, 1, 2, 2, 7, 8}, 3},
		{[]int{10, 12, 14}, 1},
	}
	for _, tc := range cases {
		if got := longestRun(tc.days); got != tc.want {
			t.Fatalf("longestRun(%v) = %d, want %d", tc.days, got, tc.want)
		}
	}
}

func TestBehaviouralAchievements(t *testing.T) {
	state := model.NewState()
	day := make([]model.TaskRecord, 0, 10)
	for i := 0; i < 10; i++ {
		day = append(day, model.TaskRecord{Text: "t", Completed: true, Time: "12:00", Category: model.CategoryWork})
	}
	day[0].Time = "07:59"
	day[1].Time = "22:01"
	day[2].PomodoroTime = 4 * 3600
	day = append(day, model.TaskRecord{Text: "late but open", Time: "23:00"})
	state.Tasks["2024-06-01"] = day

	p := EvaluateAll(&state)
	for _, id := range []string{"early-bird", "night-owl", "full-day", "marathon", "focused-hour", "first-pomo"} {
		if !p.IsUnlocked(id) {
			t.Fatalf("expected %s unlocked, got %v", id, ids(p.Unlocked))
		}
	}
	if p.IsUnlocked("perfect-day") {
		t.Fatal("open task must prevent perfect day")
	}

	state.Tasks["2024-06-01"][0].Time = "08:00"
	state.Tasks["2024-06-01"][1].Time = "22:00"
	p = EvaluateAll(&state)
	if p.IsUnlocked("early-bird") || p.IsUnlocked("night-owl") {
		t.Fatal("boundary times must not unlock early bird or night owl")
	}
}
