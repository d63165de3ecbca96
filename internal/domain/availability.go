package domain

import "time"

// AvailabilityRule restricts which weekdays a reservation may start on.
// An empty AllowedCheckInWeekdays set means any weekday is a legal check-in.
// The rule never constrains check-out.
type AvailabilityRule struct {
	ItemID                 string
	AllowedCheckInWeekdays []time.Weekday
	UpdatedAt              time.Time
}

// BlackoutRange is an owner-declared span of days, inclusive on both ends,
// where the item is wholly unavailable regardless of weekday rules or
// reservation state.
type BlackoutRange struct {
	ID        string
	ItemID    string
	StartDate Date
	EndDate   Date
	Reason    string
	CreatedAt time.Time
}

// Contains reports whether d falls inside the blackout (inclusive bounds).
func (b BlackoutRange) Contains(d Date) bool {
	return !d.Before(b.StartDate) && !d.After(b.EndDate)
}

// OverlapsRange reports whether the blackout intersects the half-open range
// [start, end). The inclusive end date maps to an exclusive bound of end+1.
func (b BlackoutRange) OverlapsRange(start, end Date) bool {
	return RangesOverlap(start, end, b.StartDate, b.EndDate.AddDays(1))
}
