package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// Reservation is a renter's claim on an item over the half-open range
// [CheckIn, CheckOut). CheckOut is a legal check-in day for the next renter.
type Reservation struct {
	ID               string
	ItemID           string
	RenterID         string
	OwnerID          string
	CheckIn          Date
	CheckOut         Date
	TotalPrice       decimal.Decimal
	Status           ReservationStatus
	PaymentReference string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Nights returns the number of nights covered, always >= 1 for a valid
// reservation.
func (r Reservation) Nights() int {
	return DaysBetween(r.CheckIn, r.CheckOut)
}

// IsActive reports whether the reservation counts against availability.
func (r Reservation) IsActive() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// Overlaps reports whether the reservation's range intersects the half-open
// range [start, end).
func (r Reservation) Overlaps(start, end Date) bool {
	return RangesOverlap(start, end, r.CheckIn, r.CheckOut)
}

// CanTransitionTo reports whether the status machine permits moving from the
// current status to next. Cancelled and completed are terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationStatusPending:
		return next == ReservationStatusConfirmed || next == ReservationStatusCancelled
	case ReservationStatusConfirmed:
		return next == ReservationStatusCancelled || next == ReservationStatusCompleted
	default:
		return false
	}
}
