package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a rentable physical item. The booking core only consumes the owner
// and the per-day price; everything else about a listing lives elsewhere.
type Item struct {
	ID          string
	OwnerID     string
	Title       string
	PricePerDay decimal.Decimal
	CreatedAt   time.Time
}
