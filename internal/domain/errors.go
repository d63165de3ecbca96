package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDateFormat        = errors.New("invalid date format")
	ErrInvalidRange             = errors.New("invalid date range")
	ErrInvalidWeekday           = errors.New("invalid weekday")
	ErrUnauthorized             = errors.New("caller is not the item owner")
	ErrItemNotFound             = errors.New("item not found")
	ErrReservationNotFound      = errors.New("reservation not found")
	ErrBlackoutNotFound         = errors.New("blackout range not found")
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrPaymentReferenceRequired = errors.New("payment reference required")
	ErrOwnerRequired            = errors.New("owner id required")
	ErrTitleRequired            = errors.New("title required")
	ErrNegativePrice            = errors.New("price per day must not be negative")
	ErrInvalidID                = errors.New("invalid id")
	ErrReservationOverlap       = errors.New("reservation overlaps an existing active reservation")
	ErrUnavailable              = errors.New("service unavailable")
)

// IllegalCheckInError reports a check-in date whose weekday the owner does
// not allow. It carries the allowed set so callers can suggest valid dates.
type IllegalCheckInError struct {
	Weekday time.Weekday
	Allowed []time.Weekday
}

func (e *IllegalCheckInError) Error() string {
	names := make([]string, 0, len(e.Allowed))
	for _, wd := range e.Allowed {
		names = append(names, wd.String())
	}
	return fmt.Sprintf("check-in on %s not allowed; allowed weekdays: %s",
		e.Weekday, strings.Join(names, ", "))
}

type ConflictKind string

const (
	ConflictKindBlackout ConflictKind = "blackout"
	ConflictKindBooked   ConflictKind = "booked"
)

// Conflict identifies one blackout range or active reservation overlapping a
// proposed range. For blackouts End is the exclusive bound (end date + 1) so
// both kinds read as half-open.
type Conflict struct {
	Kind  ConflictKind
	ID    string
	Start Date
	End   Date
}

// DateConflictError reports every overlap a proposal hit, plus a suggested
// safe check-out when at least one conflict is an existing booking.
type DateConflictError struct {
	Conflicts []Conflict
	// AlternateCheckout, when set, is the latest check-out that cannot
	// overlap the earliest conflicting booking. Callers must re-validate.
	AlternateCheckout *Date
}

func (e *DateConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		c := e.Conflicts[0]
		return fmt.Sprintf("dates conflict with %s range [%s, %s)", c.Kind, c.Start, c.End)
	}
	return fmt.Sprintf("dates conflict with %d existing ranges", len(e.Conflicts))
}

// HasBookedConflict reports whether any conflict is an existing reservation
// (as opposed to an owner blackout).
func (e *DateConflictError) HasBookedConflict() bool {
	for _, c := range e.Conflicts {
		if c.Kind == ConflictKindBooked {
			return true
		}
	}
	return false
}
