package domain

import (
	"fmt"
	"time"
)

// Date is a timezone-naive calendar date. Bookings are keyed on the calendar
// day the renter and owner agree on, never on an instant, so there is no
// time-of-day and no location attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes its arguments the way time.Date does (e.g. January 32
// becomes February 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its calendar date, ignoring location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO-8601 date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return DateOf(t), nil
}

// String formats the date as ISO-8601 (YYYY-MM-DD). ParseDate(d.String())
// round-trips exactly for any valid date.
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Time returns midnight UTC of the date, for storage drivers that want a
// time.Time.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of week, 0 = Sunday through 6 = Saturday.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

const secondsPerDay = 86400

// DaysBetween returns b - a in whole days; negative when b precedes a.
// Computed on Unix day numbers rather than a time.Duration, which caps at
// roughly 292 years.
func DaysBetween(a, b Date) int {
	return int(b.Time().Unix()/secondsPerDay - a.Time().Unix()/secondsPerDay)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// RangesOverlap reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one day. Abutting ranges do not overlap,
// which is what makes same-day turnover legal.
func RangesOverlap(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
