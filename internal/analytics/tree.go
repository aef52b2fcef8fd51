package analytics

import (
	"sort"
	"time"

	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
)

// Tree is the year > month > week-of-month > day rollup of the task store.
// Children at every level are ordered latest first.
type Tree struct {
	Years []YearNode
}

type YearNode struct {
	Year         int
	Tasks        []model.TaskRecord
	Productivity int
	Months       []MonthNode
}

type MonthNode struct {
	Year         int
	Month        time.Month
	Tasks        []model.TaskRecord
	Productivity int
	Weeks        []WeekNode
}

type WeekNode struct {
	Week         int
	Tasks        []model.TaskRecord
	Productivity int
	Days         []DayNode
}

type DayNode struct {
	Key          string
	Day          int
	Tasks        []model.TaskRecord
	Completed    int
	Productivity int
}

// WeekOfMonth numbers weeks so that the first row of a Sunday-first month
// calendar is week 1.
func WeekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	n := t.Day() + int(first.Weekday())
	return (n + 6) / 7
}

// BuildTree rolls the whole store up. Buckets with no real tasks and keys
// that are not valid dates are left out.
func BuildTree(store model.TaskStore) Tree {
	type dayAcc struct {
		key   string
		day   int
		tasks []model.TaskRecord
	}
	type weekAcc struct{ days map[int]*dayAcc }
	type monthAcc struct{ weeks map[int]*weekAcc }
	type yearAcc struct{ months map[time.Month]*monthAcc }

	years := make(map[int]*yearAcc)
	for _, key := range store.Keys() {
		tasks := store.Get(key)
		if len(tasks) == 0 {
			continue
		}
		date, err := datekey.Parse(key)
		if err != nil {
			continue
		}
		y, ok := years[date.Year()]
		if !ok {
			y = &yearAcc{months: make(map[time.Month]*monthAcc)}
			years[date.Year()] = y
		}
		m, ok := y.months[date.Month()]
		if !ok {
			m = &monthAcc{weeks: make(map[int]*weekAcc)}
			y.months[date.Month()] = m
		}
		wk := WeekOfMonth(date)
		w, ok := m.weeks[wk]
		if !ok {
			w = &weekAcc{days: make(map[int]*dayAcc)}
			m.weeks[wk] = w
		}
		w.days[date.Day()] = &dayAcc{key: key, day: date.Day(), tasks: tasks}
	}

	tree := Tree{Years: make([]YearNode, 0, len(years))}
	for _, year := range sortedDesc(keysOf(years)) {
		yAcc := years[year]
		yNode := YearNode{Year: year}
		months := make([]int, 0, len(yAcc.months))
		for m := range yAcc.months {
			months = append(months, int(m))
		}
		for _, month := range sortedDesc(months) {
			mAcc := yAcc.months[time.Month(month)]
			mNode := MonthNode{Year: year, Month: time.Month(month)}
			for _, week := range sortedDesc(keysOf(mAcc.weeks)) {
				wAcc := mAcc.weeks[week]
				wNode := WeekNode{Week: week}
				for _, day := range sortedDesc(keysOf(wAcc.days)) {
					d := wAcc.days[day]
					_, completed := Counts(d.tasks)
					wNode.Days = append(wNode.Days, DayNode{
						Key:          d.key,
						Day:          d.day,
						Tasks:        d.tasks,
						Completed:    completed,
						Productivity: Productivity(d.tasks),
					})
					wNode.Tasks = append(wNode.Tasks, d.tasks...)
				}
				wNode.Productivity = Productivity(wNode.Tasks)
				mNode.Weeks = append(mNode.Weeks, wNode)
				mNode.Tasks = append(mNode.Tasks, wNode.Tasks...)
			}
			mNode.Productivity = Productivity(mNode.Tasks)
			yNode.Months = append(yNode.Months, mNode)
			yNode.Tasks = append(yNode.Tasks, mNode.Tasks...)
		}
		yNode.Productivity = Productivity(yNode.Tasks)
		tree.Years = append(tree.Years, yNode)
	}
	return tree
}

func (t Tree) Year(year int) (YearNode, bool) {
	for _, y := range t.Years {
		if y.Year == year {
			return y, true
		}
	}
	return YearNode{}, false
}

func (y YearNode) Month(month time.Month) (MonthNode, bool) {
	for _, m := range y.Months {
		if m.Month == month {
			return m, true
		}
	}
	return MonthNode{}, false
}

func (m MonthNode) Week(week int) (WeekNode, bool) {
	for _, w := range m.Weeks {
		if w.Week == week {
			return w, true
		}
	}
	return WeekNode{}, false
}

func (w WeekNode) Day(day int) (DayNode, bool) {
	for _, d := range w.Days {
		if d.Day == day {
			return d, true
		}
	}
	return DayNode{}, false
}

func keysOf[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func sortedDesc(in []int) []int {
	sort.Sort(sort.Reverse(sort.IntSlice(in)))
	return in
}
