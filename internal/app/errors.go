package app

import (
	"errors"
	"fmt"

	"github.com/peergear/rental-api/internal/domain"
)

var knownErrors = []error{
	domain.ErrInvalidDateFormat,
	domain.ErrInvalidRange,
	domain.ErrInvalidWeekday,
	domain.ErrUnauthorized,
	domain.ErrItemNotFound,
	domain.ErrReservationNotFound,
	domain.ErrBlackoutNotFound,
	domain.ErrInvalidTransition,
	domain.ErrPaymentReferenceRequired,
	domain.ErrOwnerRequired,
	domain.ErrTitleRequired,
	domain.ErrNegativePrice,
	domain.ErrInvalidID,
	domain.ErrReservationOverlap,
	domain.ErrUnavailable,
}

// wrapUnavailable passes recognized domain errors through untouched and tags
// everything else (pool failures, cancelled contexts, tx timeouts) with
// ErrUnavailable. A transient outage must never surface to a caller looking
// like a validation verdict such as a date conflict.
func wrapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	var illegalCheckIn *domain.IllegalCheckInError
	if errors.As(err, &illegalCheckIn) {
		return err
	}
	var dateConflict *domain.DateConflictError
	if errors.As(err, &dateConflict) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
}
