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

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetItemForUpdate locks the item row for the rest of the transaction. Every
// booking attempt for an item funnels through this lock, which is what makes
// the validate-then-insert sequence mutually exclusive per item.
func (r *BookingRepository) GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`

	item, err := scanItem(r.queryRow(ctx, query, itemID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Item{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item for update: %w", err)
	}
	return item, nil
}

func (r *BookingRepository) GetAllowedWeekdays(ctx context.Context, itemID string) ([]time.Weekday, error) {
	const query = `SELECT allowed_checkin_weekdays FROM availability_rules WHERE item_id = $1`

	var raw []int32
	err := r.queryRow(ctx, query, itemID).Scan(&raw)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			// No rule row means no restriction.
			return nil, nil
		}
		return nil, fmt.Errorf("get allowed weekdays: %w", err)
	}
	return weekdaysFromInts(raw), nil
}

func (r *BookingRepository) ListBlackouts(ctx context.Context, itemID string) ([]domain.BlackoutRange, error) {
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

func (r *BookingRepository) ListActiveReservations(ctx context.Context, itemID string) ([]domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE item_id = $1 AND status IN ('pending', 'confirmed')
ORDER BY check_in`

	return r.listReservations(ctx, query, itemID)
}

func (r *BookingRepository) ListActiveReservationsInWindow(ctx context.Context, itemID string, windowStart, windowEnd domain.Date) ([]domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE item_id = $1
  AND status IN ('pending', 'confirmed')
  AND check_in < $3::date
  AND check_out > $2::date
ORDER BY check_in`

	return r.listReservations(ctx, query, itemID, windowStart.String(), windowEnd.String())
}

func (r *BookingRepository) listReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("list reservations: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

func (r *BookingRepository) CreateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, item_id, renter_id, owner_id, check_in, check_out, total_price, status, payment_reference, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5::date, $6::date, $7::numeric, $8, $9, $10, $11)`

	_, err := r.exec(ctx, stmt,
		res.ID,
		res.ItemID,
		res.RenterID,
		res.OwnerID,
		res.CheckIn.String(),
		res.CheckOut.String(),
		res.TotalPrice.String(),
		res.Status,
		res.PaymentReference,
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrReservationOverlap
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return r.getReservation(ctx, query, id)
}

func (r *BookingRepository) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	return r.getReservation(ctx, query, id)
}

func (r *BookingRepository) getReservation(ctx context.Context, query, id string) (domain.Reservation, error) {
	res, err := scanReservation(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Reservation{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

func (r *BookingRepository) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus, updatedAt time.Time) error {
	const stmt = `UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id, status, updatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *BookingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
