// Package datekey converts between calendar dates and the YYYY-MM-DD keys
// that join tasks, journal entries and streak state.
package datekey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidKey = errors.New("datekey: invalid date key")

// Format renders the local calendar date of t as YYYY-MM-DD. The location of
// t is respected; no UTC conversion happens.
func Format(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// Parse builds local midnight for a YYYY-MM-DD key.
func Parse(key string) (time.Time, error) {
	return ParseIn(key, time.Local)
}

// ParseIn is Parse with an explicit location.
func ParseIn(key string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > DaysIn(year, time.Month(month)) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// Valid reports whether key is a well-formed calendar date.
func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// Today returns the key for the local calendar day of now.
func Today(now time.Time) string {
	return Format(now)
}

// AddDays shifts key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// Yesterday returns the key one calendar day before key.
func Yesterday(key string) (string, error) {
	return AddDays(key, -1)
}

// Midnight truncates t to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayNumber maps a calendar date to a monotonically increasing day index so
// consecutive days differ by exactly one regardless of DST shifts.
func DayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
