package datekey

import (
	"errors"
	"testing"
	"time"
)

func TestFormatUsesLocalCalendarFields(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)
	// 2024-01-01 05:00 in UTC+14 is still 2023-12-31 in UTC.
	tm := time.Date(2024, 1, 1, 5, 0, 0, 0, loc)
	if got := Format(tm); got != "2024-01-01" {
		t.Fatalf("Format = %q, want 2024-01-01", got)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	keys := []string{
		"2024-01-01",
		"2023-12-31",
		"2024-02-29",
		"2024-03-01",
		"2000-02-29",
		"1999-09-09",
		"2026-10-19",
	}
	for _, key := range keys {
		parsed, err := Parse(key)
		if err != nil {
			t.Fatalf("parse %q: %v", key, err)
		}
		if got := Format(parsed); got != key {
			t.Fatalf("round trip %q got %q", key, got)
		}
	}
}

func TestParseRejectsInvalidKeys(t *testing.T) {
	cases := []string{"", "2024-1-01", "2023-02-29", "2024-13-01", "2024-00-10", "2024-04-31", "abcd-ef-gh", "2024/01/01"}
	for _, key := range cases {
		if _, err := Parse(key); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("parse %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestAddDaysCrossesBoundaries(t *testing.T) {
	cases := []struct {
		key  string
		n    int
		want string
	}{
		{"2024-01-01", -1, "2023-12-31"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2023-03-01", -1, "2023-02-28"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-01-28", 7, "2024-02-04"},
	}
	for _, tc := range cases {
		got, err := AddDays(tc.key, tc.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d): %v", tc.key, tc.n, err)
		}
		if got != tc.want {
			t.Fatalf("AddDays(%q, %d) = %q, want %q", tc.key, tc.n, got, tc.want)
		}
	}
}

func TestDayNumberConsecutive(t *testing.T) {
	a, _ := Parse("2024-03-09")
	b, _ := Parse("2024-03-10")
	if DayNumber(b)-DayNumber(a) != 1 {
		t.Fatalf("expected consecutive day numbers, got %d and %d", DayNumber(a), DayNumber(b))
	}
}
