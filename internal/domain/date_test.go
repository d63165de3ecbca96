package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"2025-01-01", "2024-02-29", "1999-12-31", "2025-06-03"} {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got := d.String(); got != s {
			t.Fatalf("round trip %q: got %q", s, got)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "2025-13-01", "2025-02-30", "not-a-date", "2025/01/01", "01-01-2025"} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("parse %q: expected ErrInvalidDateFormat, got %v", s, err)
		}
	}
}

func TestDate_Weekday(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date string
		want time.Weekday
	}{
		{"2025-06-01", time.Sunday},
		{"2025-03-03", time.Monday},
		{"2025-12-10", time.Wednesday},
		{"2025-03-07", time.Friday},
		{"2025-12-20", time.Saturday},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.date)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.date, err)
		}
		if got := d.Weekday(); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.date, tc.want, got)
		}
	}
}

func TestDate_AddDays(t *testing.T) {
	t.Parallel()

	d := NewDate(2024, time.February, 28)
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("leap day: got %s", got)
	}
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Fatalf("month rollover: got %s", got)
	}
	if got := d.AddDays(-28).String(); got != "2024-01-31" {
		t.Fatalf("negative: got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	a := NewDate(2025, time.January, 1)
	b := NewDate(2025, time.January, 4)
	if got := DaysBetween(a, b); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Fatalf("expected -3, got %d", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}

	// Across a DST boundary date arithmetic must stay whole-day exact.
	x := NewDate(2025, time.March, 1)
	y := NewDate(2025, time.April, 1)
	if got := DaysBetween(x, y); got != 31 {
		t.Fatalf("expected 31, got %d", got)
	}
}

func TestDaysBetween_FarApartDates(t *testing.T) {
	t.Parallel()

	// Spans beyond ~292 years overflow a time.Duration, so the count must
	// come from calendar arithmetic. A Gregorian 400-year cycle is exactly
	// 146097 days.
	a := NewDate(1700, time.January, 1)
	b := NewDate(2100, time.January, 1)
	if got := DaysBetween(a, b); got != 146097 {
		t.Fatalf("expected 146097, got %d", got)
	}
	if got := DaysBetween(b, a); got != -146097 {
		t.Fatalf("expected -146097, got %d", got)
	}

	min := NewDate(1, time.January, 1)
	max := NewDate(9999, time.December, 31)
	if got := DaysBetween(min, max); got != 3652058 {
		t.Fatalf("expected 3652058, got %d", got)
	}

	// AddDays and DaysBetween stay mutually consistent over the full span.
	if got := min.AddDays(3652058); got != max {
		t.Fatalf("expected %s, got %s", max, got)
	}
}

func TestRangesOverlap(t *testing.T) {
	t.Parallel()

	d := func(day int) Date { return NewDate(2025, time.December, day) }

	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     Date
		want                           bool
	}{
		{"identical", d(10), d(15), d(10), d(15), true},
		{"contained", d(10), d(20), d(12), d(14), true},
		{"partial tail", d(10), d(16), d(15), d(20), true},
		{"partial head", d(18), d(25), d(15), d(20), true},
		{"abut end to start", d(10), d(15), d(15), d(20), false},
		{"abut start to end", d(20), d(25), d(15), d(20), false},
		{"disjoint", d(1), d(5), d(15), d(20), false},
		{"one night inside", d(16), d(17), d(15), d(20), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			// Overlap is symmetric.
			if got := RangesOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Fatalf("symmetric case: expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestBlackoutRange_InclusiveBounds(t *testing.T) {
	t.Parallel()

	b := BlackoutRange{
		StartDate: NewDate(2025, time.December, 10),
		EndDate:   NewDate(2025, time.December, 12),
	}

	if !b.Contains(NewDate(2025, time.December, 10)) {
		t.Fatalf("expected start date contained")
	}
	if !b.Contains(NewDate(2025, time.December, 12)) {
		t.Fatalf("expected end date contained (inclusive)")
	}
	if b.Contains(NewDate(2025, time.December, 13)) {
		t.Fatalf("expected day after end excluded")
	}

	// A stay checking out on the blackout's start day does not touch it.
	if b.OverlapsRange(NewDate(2025, time.December, 5), NewDate(2025, time.December, 10)) {
		t.Fatalf("expected check-out on blackout start to be legal")
	}
	// A stay starting on the blackout's end day does touch it.
	if !b.OverlapsRange(NewDate(2025, time.December, 12), NewDate(2025, time.December, 14)) {
		t.Fatalf("expected check-in on blackout end to conflict")
	}
}
