package app

import (
	"context"
	"sort"
	"time"

	"github.com/peergear/rental-api/internal/clock"
	"github.com/peergear/rental-api/internal/domain"
)

type RuleRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetItem(ctx context.Context, itemID string) (domain.Item, error)
	GetAllowedWeekdays(ctx context.Context, itemID string) ([]time.Weekday, error)
	SetAllowedWeekdays(ctx context.Context, itemID string, weekdays []time.Weekday, updatedAt time.Time) error
	ListBlackouts(ctx context.Context, itemID string) ([]domain.BlackoutRange, error)
	CreateBlackout(ctx context.Context, blackout domain.BlackoutRange) error
	GetBlackout(ctx context.Context, blackoutID string) (domain.BlackoutRange, error)
	DeleteBlackout(ctx context.Context, blackoutID string) error
	ListActiveReservations(ctx context.Context, itemID string) ([]domain.Reservation, error)
}

// RuleService owns the per-item availability configuration: the allowed
// check-in weekday set and the blackout ranges. All mutations are gated on
// the caller being the item owner.
type RuleService struct {
	repo  RuleRepository
	clock clock.Clock
}

func NewRuleService(repo RuleRepository, clk clock.Clock) *RuleService {
	return &RuleService{
		repo:  repo,
		clock: clk,
	}
}

// AllowedWeekdays returns the allowed check-in weekdays for an item. An
// empty result means unrestricted.
func (s *RuleService) AllowedWeekdays(ctx context.Context, itemID string) ([]time.Weekday, error) {
	weekdays, err := s.repo.GetAllowedWeekdays(ctx, itemID)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return weekdays, nil
}

// SetAllowedWeekdays replaces the full allowed set for an item. The set is
// deduplicated and stored sorted; passing an empty set removes the
// restriction.
func (s *RuleService) SetAllowedWeekdays(ctx context.Context, itemID, callerID string, weekdays []time.Weekday) error {
	normalized, err := normalizeWeekdays(weekdays)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.repo.GetItem(txCtx, itemID)
		if err != nil {
			return err
		}
		if item.OwnerID != callerID {
			return domain.ErrUnauthorized
		}
		return s.repo.SetAllowedWeekdays(txCtx, itemID, normalized, now)
	})
	return wrapUnavailable(err)
}

func normalizeWeekdays(weekdays []time.Weekday) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]struct{}, len(weekdays))
	normalized := make([]time.Weekday, 0, len(weekdays))
	for _, wd := range weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return nil, domain.ErrInvalidWeekday
		}
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		normalized = append(normalized, wd)
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i] < normalized[j] })
	return normalized, nil
}

// ListBlackouts returns an item's blackout ranges ordered by start date.
func (s *RuleService) ListBlackouts(ctx context.Context, itemID string) ([]domain.BlackoutRange, error) {
	blackouts, err := s.repo.ListBlackouts(ctx, itemID)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return blackouts, nil
}

type AddBlackoutInput struct {
	ItemID   string
	CallerID string
	Start    domain.Date
	End      domain.Date
	Reason   string
}

// AddBlackoutResult carries the created range and any active reservations
// that now fall inside it. Adding a blackout never cancels an existing
// reservation; the overlap list is a warning for the owner to act on.
type AddBlackoutResult struct {
	Blackout             domain.BlackoutRange
	AffectedReservations []domain.Reservation
}

// AddBlackout creates a blackout range with inclusive bounds. The range is
// not checked against existing reservations, only reported against them.
func (s *RuleService) AddBlackout(ctx context.Context, in AddBlackoutInput) (AddBlackoutResult, error) {
	if in.End.Before(in.Start) {
		return AddBlackoutResult{}, domain.ErrInvalidRange
	}

	now := s.clock.Now()
	var result AddBlackoutResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.repo.GetItem(txCtx, in.ItemID)
		if err != nil {
			return err
		}
		if item.OwnerID != in.CallerID {
			return domain.ErrUnauthorized
		}

		blackout := domain.BlackoutRange{
			ID:        newID(),
			ItemID:    in.ItemID,
			StartDate: in.Start,
			EndDate:   in.End,
			Reason:    in.Reason,
			CreatedAt: now,
		}
		if err := s.repo.CreateBlackout(txCtx, blackout); err != nil {
			return err
		}

		active, err := s.repo.ListActiveReservations(txCtx, in.ItemID)
		if err != nil {
			return err
		}
		var affected []domain.Reservation
		for _, res := range active {
			if blackout.OverlapsRange(res.CheckIn, res.CheckOut) {
				affected = append(affected, res)
			}
		}

		result = AddBlackoutResult{Blackout: blackout, AffectedReservations: affected}
		return nil
	})
	if err != nil {
		return AddBlackoutResult{}, wrapUnavailable(err)
	}
	return result, nil
}

// RemoveBlackout deletes a blackout range; the range must belong to the named
// item and the caller must own that item.
func (s *RuleService) RemoveBlackout(ctx context.Context, itemID, blackoutID, callerID string) error {
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		blackout, err := s.repo.GetBlackout(txCtx, blackoutID)
		if err != nil {
			return err
		}
		if blackout.ItemID != itemID {
			return domain.ErrBlackoutNotFound
		}
		item, err := s.repo.GetItem(txCtx, blackout.ItemID)
		if err != nil {
			return err
		}
		if item.OwnerID != callerID {
			return domain.ErrUnauthorized
		}
		return s.repo.DeleteBlackout(txCtx, blackoutID)
	})
	return wrapUnavailable(err)
}
