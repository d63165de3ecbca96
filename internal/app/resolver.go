package app

import (
	"time"

	"github.com/peergear/rental-api/internal/domain"
	"github.com/shopspring/decimal"
)

// The availability resolver is pure: it operates on a snapshot of rules,
// blackouts and active reservations handed to it by the caller and never
// touches storage. The booking service runs it twice conceptually — an
// advisory pre-check may use stale data, but the authoritative run happens on
// a fresh snapshot inside the booking transaction.

// IsLegalCheckIn reports whether d may start a reservation. An empty allowed
// set means every weekday is legal. Check-out is never weekday-gated.
func IsLegalCheckIn(d domain.Date, allowed []time.Weekday) bool {
	if len(allowed) == 0 {
		return true
	}
	wd := d.Weekday()
	for _, a := range allowed {
		if a == wd {
			return true
		}
	}
	return false
}

// IsDateBlocked reports whether d falls inside any blackout range (inclusive
// bounds) or any active reservation's [check_in, check_out).
func IsDateBlocked(d domain.Date, blackouts []domain.BlackoutRange, reservations []domain.Reservation) bool {
	for _, b := range blackouts {
		if b.Contains(d) {
			return true
		}
	}
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if !d.Before(r.CheckIn) && d.Before(r.CheckOut) {
			return true
		}
	}
	return false
}

// FindConflicts enumerates every blackout range and active reservation
// overlapping the half-open range [start, end), blackouts first.
func FindConflicts(start, end domain.Date, blackouts []domain.BlackoutRange, reservations []domain.Reservation) []domain.Conflict {
	var conflicts []domain.Conflict
	for _, b := range blackouts {
		if b.OverlapsRange(start, end) {
			conflicts = append(conflicts, domain.Conflict{
				Kind:  domain.ConflictKindBlackout,
				ID:    b.ID,
				Start: b.StartDate,
				End:   b.EndDate.AddDays(1),
			})
		}
	}
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if r.Overlaps(start, end) {
			conflicts = append(conflicts, domain.Conflict{
				Kind:  domain.ConflictKindBooked,
				ID:    r.ID,
				Start: r.CheckIn,
				End:   r.CheckOut,
			})
		}
	}
	return conflicts
}

// SuggestAlternateCheckout finds the earliest active reservation starting
// strictly after start and returns its check-in as the safe upper bound for a
// check-out: [start, check_in) cannot overlap anything beginning at or after
// it. The caller must still re-validate against blackouts. The second return
// is false when availability is open-ended.
func SuggestAlternateCheckout(start domain.Date, reservations []domain.Reservation) (domain.Date, bool) {
	var best domain.Date
	found := false
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if !r.CheckIn.After(start) {
			continue
		}
		if !found || r.CheckIn.Before(best) {
			best = r.CheckIn
			found = true
		}
	}
	return best, found
}

// Quote is the priced outcome of a valid proposal.
type Quote struct {
	Nights     int
	TotalPrice decimal.Decimal
}

// ValidateProposal checks the proposed half-open range [start, end) against
// the owner's weekday rule, blackouts and active reservations, and prices it.
// Deterministic in its inputs: the same snapshot always yields the same
// result.
//
// Failure modes, in order of evaluation:
//   - domain.ErrInvalidRange for a zero- or negative-night range
//   - *domain.IllegalCheckInError when the check-in weekday is not allowed
//   - *domain.DateConflictError when the range overlaps anything, carrying
//     a suggested alternate check-out if any conflict is a booking
func ValidateProposal(start, end domain.Date, allowed []time.Weekday, blackouts []domain.BlackoutRange, reservations []domain.Reservation, pricePerDay decimal.Decimal) (Quote, error) {
	nights := domain.DaysBetween(start, end)
	if nights < 1 {
		return Quote{}, domain.ErrInvalidRange
	}

	if !IsLegalCheckIn(start, allowed) {
		return Quote{}, &domain.IllegalCheckInError{
			Weekday: start.Weekday(),
			Allowed: append([]time.Weekday(nil), allowed...),
		}
	}

	if conflicts := FindConflicts(start, end, blackouts, reservations); len(conflicts) > 0 {
		conflictErr := &domain.DateConflictError{Conflicts: conflicts}
		if conflictErr.HasBookedConflict() {
			if alt, ok := SuggestAlternateCheckout(start, reservations); ok {
				conflictErr.AlternateCheckout = &alt
			}
		}
		return Quote{}, conflictErr
	}

	return Quote{
		Nights:     nights,
		TotalPrice: pricePerDay.Mul(decimal.NewFromInt(int64(nights))),
	}, nil
}
