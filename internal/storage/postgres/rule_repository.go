package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peergear/rental-api/internal/domain"
)

type RuleRepository struct {
	pool *pgxpool.Pool
}

func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

func (r *RuleRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RuleRepository) GetItem(ctx context.Context, itemID string) (domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.queryRow(ctx, query, itemID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Item{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *RuleRepository) GetAllowedWeekdays(ctx context.Context, itemID string) ([]time.Weekday, error) {
	const query = `SELECT allowed_checkin_weekdays FROM availability_rules WHERE item_id = $1`

	var raw []int32
	err := r.queryRow(ctx, query, itemID).Scan(&raw)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get allowed weekdays: %w", err)
	}
	return weekdaysFromInts(raw), nil
}

// SetAllowedWeekdays replaces the full weekday set for an item, creating the
// rule row lazily on first write.
func (r *RuleRepository) SetAllowedWeekdays(ctx context.Context, itemID string, weekdays []time.Weekday, updatedAt time.Time) error {
	const stmt = `
INSERT INTO availability_rules (item_id, allowed_checkin_weekdays, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (item_id) DO UPDATE
SET allowed_checkin_weekdays = EXCLUDED.allowed_checkin_weekdays,
    updated_at = EXCLUDED.updated_at`

	_, err := r.exec(ctx, stmt, itemID, weekdaysToInts(weekdays), updatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("set allowed weekdays: %w", err)
	}
	return nil
}

func (r *RuleRepository) ListBlackouts(ctx context.Context, itemID string) ([]domain.BlackoutRange, error) {
	query := `SELECT ` + blackoutColumns + ` FROM blackout_ranges WHERE item_id = $1 ORDER BY start_date`

	rows, err := r.query(ctx, query, itemID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list blackouts: %w", err)
	}
	defer rows.Close()

	var blackouts []domain.BlackoutRange
	for rows.Next() {
		b, err := scanBlackout(rows)
		if err != nil {
			return nil, fmt.Errorf("list blackouts: %w", err)
		}
		blackouts = append(blackouts, b)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list blackouts: %w", err)
	}
	return blackouts, nil
}

func (r *RuleRepository) CreateBlackout(ctx context.Context, blackout domain.BlackoutRange) error {
	const stmt = `
INSERT INTO blackout_ranges (id, item_id, start_date, end_date, reason, created_at)
VALUES ($1, $2, $3::date, $4::date, $5, $6)`

	_, err := r.exec(ctx, stmt,
		blackout.ID,
		blackout.ItemID,
		blackout.StartDate.String(),
		blackout.EndDate.String(),
		blackout.Reason,
		blackout.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create blackout: %w", err)
	}
	return nil
}

func (r *RuleRepository) GetBlackout(ctx context.Context, blackoutID string) (domain.BlackoutRange, error) {
	query := `SELECT ` + blackoutColumns + ` FROM blackout_ranges WHERE id = $1`

	b, err := scanBlackout(r.queryRow(ctx, query, blackoutID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.BlackoutRange{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.BlackoutRange{}, domain.ErrBlackoutNotFound
		}
		return domain.BlackoutRange{}, fmt.Errorf("get blackout: %w", err)
	}
	return b, nil
}

func (r *RuleRepository) DeleteBlackout(ctx context.Context, blackoutID string) error {
	const stmt = `DELETE FROM blackout_ranges WHERE id = $1`

	tag, err := r.exec(ctx, stmt, blackoutID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete blackout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBlackoutNotFound
	}
	return nil
}

func (r *RuleRepository) ListActiveReservations(ctx context.Context, itemID string) ([]domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE item_id = $1 AND status IN ('pending', 'confirmed')
ORDER BY check_in`

	rows, err := r.query(ctx, query, itemID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("list active reservations: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	return reservations, nil
}

func (r *RuleRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RuleRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *RuleRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
