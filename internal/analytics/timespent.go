package analytics

import (
	"strconv"
	"time"

	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
)

type Bucket string

const (
	BucketStudy         Bucket = "study"
	BucketWork          Bucket = "work"
	BucketHealth        Bucket = "health"
	BucketPersonal      Bucket = "personal"
	BucketMiscellaneous Bucket = "miscellaneous"
)

// Buckets lists the time buckets in chart order.
var Buckets = []Bucket{BucketStudy, BucketWork, BucketHealth, BucketPersonal, BucketMiscellaneous}

// CategoryTime holds focused seconds per bucket.
type CategoryTime map[Bucket]int

// Total sums every bucket.
func (c CategoryTime) Total() int {
	sum := 0
	for _, v := range c {
		sum += v
	}
	return sum
}

func newCategoryTime() CategoryTime {
	out := make(CategoryTime, len(Buckets))
	for _, b := range Buckets {
		out[b] = 0
	}
	return out
}

// BucketFor picks the time bucket of a task. ok is false for unknown
// categories, which are left out of bucketed totals.
func BucketFor(t model.TaskRecord) (Bucket, bool) {
	if t.IsMiscellaneous() {
		return BucketMiscellaneous, true
	}
	if t.Category == "" {
		return BucketPersonal, true
	}
	if !t.Category.IsValid() {
		return "", false
	}
	return Bucket(t.Category), true
}

// TimeByCategory sums focused seconds per bucket for tasks.
func TimeByCategory(tasks []model.TaskRecord) CategoryTime {
	out := newCategoryTime()
	addCategoryTime(out, tasks)
	return out
}

func addCategoryTime(acc CategoryTime, tasks []model.TaskRecord) {
	for _, t := range tasks {
		if t.IsBlank() {
			continue
		}
		b, ok := BucketFor(t)
		if !ok {
			continue
		}
		acc[b] += max(t.PomodoroTime, 0)
	}
}

// DayPoint is one day of a chart series.
type DayPoint struct {
	Key          string
	Label        string
	Scheduled    int
	Completed    int
	Productivity int
	FocusSeconds int
}

func dayPoint(store model.TaskStore, date time.Time, label string) DayPoint {
	key := datekey.Format(date)
	tasks := store.Get(key)
	total, completed := Counts(tasks)
	return DayPoint{
		Key:          key,
		Label:        label,
		Scheduled:    total,
		Completed:    completed,
		Productivity: Percent(completed, total),
		FocusSeconds: FocusSeconds(tasks),
	}
}

// TrailingDays returns n day points ending on today's calendar day, oldest
// first, labelled with short weekday names.
func TrailingDays(store model.TaskStore, today time.Time, n int) []DayPoint {
	if n <= 0 {
		return nil
	}
	base := datekey.Midnight(today)
	out := make([]DayPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := base.AddDate(0, 0, -i)
		out = append(out, dayPoint(store, date, date.Weekday().String()[:3]))
	}
	return out
}

// MonthSeries covers every day of one calendar month.
type MonthSeries struct {
	Year         int
	Month        time.Month
	Days         []DayPoint
	CategoryTime CategoryTime
}

// Month builds the per-day series and category totals for a month.
func Month(store model.TaskStore, year int, month time.Month) MonthSeries {
	days := datekey.DaysIn(year, month)
	out := MonthSeries{
		Year:         year,
		Month:        month,
		Days:         make([]DayPoint, 0, days),
		CategoryTime: newCategoryTime(),
	}
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		p := dayPoint(store, date, strconv.Itoa(d))
		out.Days = append(out.Days, p)
		addCategoryTime(out.CategoryTime, store.Get(p.Key))
	}
	return out
}

// MonthPoint is one month of the yearly series.
type MonthPoint struct {
	Month        time.Month
	Label        string
	Scheduled    int
	Completed    int
	Productivity int
	FocusSeconds int
}

// Year builds twelve month points for a calendar year.
func Year(store model.TaskStore, year int) []MonthPoint {
	buckets := make([][]model.TaskRecord, 12)
	for _, key := range store.Keys() {
		date, err := datekey.Parse(key)
		if err != nil || date.Year() != year {
			continue
		}
		idx := int(date.Month()) - 1
		buckets[idx] = append(buckets[idx], store.Get(key)...)
	}
	out := make([]MonthPoint, 0, 12)
	for i, tasks := range buckets {
		total, completed := Counts(tasks)
		month := time.Month(i + 1)
		out = append(out, MonthPoint{
			Month:        month,
			Label:        month.String()[:3],
			Scheduled:    total,
			Completed:    completed,
			Productivity: Percent(completed, total),
			FocusSeconds: FocusSeconds(tasks),
		})
	}
	return out
}
