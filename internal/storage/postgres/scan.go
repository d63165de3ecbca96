package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peergear/rental-api/internal/domain"
	"github.com/shopspring/decimal"
)

// NUMERIC columns are selected as ::text and parsed here so that prices stay
// exact decimals without a driver-level codec.

const itemColumns = `id, owner_id, title, price_per_day::text, created_at`

func scanItem(row pgx.Row) (domain.Item, error) {
	var item domain.Item
	var price string
	if err := row.Scan(&item.ID, &item.OwnerID, &item.Title, &price, &item.CreatedAt); err != nil {
		return domain.Item{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Item{}, fmt.Errorf("parse price_per_day: %w", err)
	}
	item.PricePerDay = parsed
	return item, nil
}

const reservationColumns = `id, item_id, renter_id, owner_id, check_in, check_out, total_price::text, status, payment_reference, created_at, updated_at`

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var res domain.Reservation
	var checkIn, checkOut time.Time
	var price, status string
	if err := row.Scan(
		&res.ID,
		&res.ItemID,
		&res.RenterID,
		&res.OwnerID,
		&checkIn,
		&checkOut,
		&price,
		&status,
		&res.PaymentReference,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return domain.Reservation{}, err
	}
	res.CheckIn = domain.DateOf(checkIn)
	res.CheckOut = domain.DateOf(checkOut)
	res.Status = domain.ReservationStatus(status)
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("parse total_price: %w", err)
	}
	res.TotalPrice = parsed
	return res, nil
}

const blackoutColumns = `id, item_id, start_date, end_date, reason, created_at`

func scanBlackout(row pgx.Row) (domain.BlackoutRange, error) {
	var b domain.BlackoutRange
	var start, end time.Time
	if err := row.Scan(&b.ID, &b.ItemID, &start, &end, &b.Reason, &b.CreatedAt); err != nil {
		return domain.BlackoutRange{}, err
	}
	b.StartDate = domain.DateOf(start)
	b.EndDate = domain.DateOf(end)
	return b, nil
}

func weekdaysFromInts(raw []int32) []time.Weekday {
	if len(raw) == 0 {
		return nil
	}
	weekdays := make([]time.Weekday, 0, len(raw))
	for _, v := range raw {
		weekdays = append(weekdays, time.Weekday(v))
	}
	return weekdays
}

func weekdaysToInts(weekdays []time.Weekday) []int32 {
	ints := make([]int32, 0, len(weekdays))
	for _, wd := range weekdays {
		ints = append(ints, int32(wd))
	}
	return ints
}
