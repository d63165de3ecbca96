package app

import (
	"context"
	"errors"
	"time"

	"github.com/peergear/rental-api/internal/clock"
	"github.com/peergear/rental-api/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error)
	GetAllowedWeekdays(ctx context.Context, itemID string) ([]time.Weekday, error)
	ListBlackouts(ctx context.Context, itemID string) ([]domain.BlackoutRange, error)
	ListActiveReservations(ctx context.Context, itemID string) ([]domain.Reservation, error)
	ListActiveReservationsInWindow(ctx context.Context, itemID string, windowStart, windowEnd domain.Date) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, res domain.Reservation) error
	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus, updatedAt time.Time) error
}

// BookingService is the booking transaction manager. Reserve serializes the
// validate-then-insert sequence per item by locking the item row, so two
// attempts on the same item cannot interleave while attempts on different
// items proceed in parallel.
type BookingService struct {
	repo  BookingRepository
	clock clock.Clock
}

func NewBookingService(repo BookingRepository, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:  repo,
		clock: clk,
	}
}

type ReserveInput struct {
	ItemID           string
	RenterID         string
	CheckIn          domain.Date
	CheckOut         domain.Date
	PaymentReference string
}

// Reserve re-validates the proposal against a fresh snapshot read under the
// item lock and, if it holds, commits a pending reservation. Client-side
// pre-checks are advisory only; this is the sole authority.
func (s *BookingService) Reserve(ctx context.Context, in ReserveInput) (domain.Reservation, error) {
	if in.PaymentReference == "" {
		return domain.Reservation{}, domain.ErrPaymentReferenceRequired
	}
	if in.RenterID == "" {
		return domain.Reservation{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.repo.GetItemForUpdate(txCtx, in.ItemID)
		if err != nil {
			return err
		}

		allowed, err := s.repo.GetAllowedWeekdays(txCtx, in.ItemID)
		if err != nil {
			return err
		}
		blackouts, err := s.repo.ListBlackouts(txCtx, in.ItemID)
		if err != nil {
			return err
		}
		reservations, err := s.repo.ListActiveReservations(txCtx, in.ItemID)
		if err != nil {
			return err
		}

		quote, err := ValidateProposal(in.CheckIn, in.CheckOut, allowed, blackouts, reservations, item.PricePerDay)
		if err != nil {
			return err
		}

		res := domain.Reservation{
			ID:               newID(),
			ItemID:           in.ItemID,
			RenterID:         in.RenterID,
			OwnerID:          item.OwnerID,
			CheckIn:          in.CheckIn,
			CheckOut:         in.CheckOut,
			TotalPrice:       quote.TotalPrice,
			Status:           domain.ReservationStatusPending,
			PaymentReference: in.PaymentReference,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if err := s.repo.CreateReservation(txCtx, res); err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		// The exclusion constraint fired: a writer that bypassed the item
		// lock committed an overlapping range after our snapshot. The tx is
		// aborted at this point, so re-read outside it for conflict detail.
		if errors.Is(err, domain.ErrReservationOverlap) {
			return domain.Reservation{}, s.conflictAfterRace(ctx, in)
		}
		return domain.Reservation{}, wrapUnavailable(err)
	}
	return result, nil
}

func (s *BookingService) conflictAfterRace(ctx context.Context, in ReserveInput) error {
	winners, err := s.repo.ListActiveReservations(ctx, in.ItemID)
	if err != nil {
		return wrapUnavailable(err)
	}
	conflicts := FindConflicts(in.CheckIn, in.CheckOut, nil, winners)
	if len(conflicts) == 0 {
		// The winner was cancelled between the constraint firing and this
		// re-read. Report a plain overlap rather than a conflict error that
		// names no ranges; the caller can simply retry.
		return domain.ErrReservationOverlap
	}
	conflictErr := &domain.DateConflictError{Conflicts: conflicts}
	if alt, ok := SuggestAlternateCheckout(in.CheckIn, winners); ok && conflictErr.HasBookedConflict() {
		conflictErr.AlternateCheckout = &alt
	}
	return conflictErr
}

// Confirm moves a pending reservation to confirmed. Driven by the payment
// confirmation signal; the caller has already verified the payment.
func (s *BookingService) Confirm(ctx context.Context, reservationID string) (domain.Reservation, error) {
	return s.transition(ctx, reservationID, domain.ReservationStatusConfirmed, "")
}

// Cancel moves a pending or confirmed reservation to cancelled. The caller
// must be the renter or the owner.
func (s *BookingService) Cancel(ctx context.Context, reservationID, callerID string) (domain.Reservation, error) {
	if callerID == "" {
		return domain.Reservation{}, domain.ErrUnauthorized
	}
	return s.transition(ctx, reservationID, domain.ReservationStatusCancelled, callerID)
}

// Complete moves a confirmed reservation to completed after checkout
// processing.
func (s *BookingService) Complete(ctx context.Context, reservationID string) (domain.Reservation, error) {
	return s.transition(ctx, reservationID, domain.ReservationStatusCompleted, "")
}

func (s *BookingService) transition(ctx context.Context, reservationID string, next domain.ReservationStatus, callerID string) (domain.Reservation, error) {
	now := s.clock.Now()
	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		if callerID != "" && callerID != res.RenterID && callerID != res.OwnerID {
			return domain.ErrUnauthorized
		}
		if !res.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
		if err := s.repo.UpdateReservationStatus(txCtx, reservationID, next, now); err != nil {
			return err
		}

		res.Status = next
		res.UpdatedAt = now
		result = res
		return nil
	})
	if err != nil {
		return domain.Reservation{}, wrapUnavailable(err)
	}
	return result, nil
}

// GetReservation looks up a single reservation by ID.
func (s *BookingService) GetReservation(ctx context.Context, reservationID string) (domain.Reservation, error) {
	res, err := s.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return domain.Reservation{}, wrapUnavailable(err)
	}
	return res, nil
}

// ListActiveReservations returns pending and confirmed reservations whose
// range intersects the half-open window [windowStart, windowEnd).
func (s *BookingService) ListActiveReservations(ctx context.Context, itemID string, windowStart, windowEnd domain.Date) ([]domain.Reservation, error) {
	if !windowStart.Before(windowEnd) {
		return nil, domain.ErrInvalidRange
	}
	reservations, err := s.repo.ListActiveReservationsInWindow(ctx, itemID, windowStart, windowEnd)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return reservations, nil
}
