package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peergear/rental-api/internal/domain"
	"github.com/peergear/rental-api/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestCatalogRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewCatalogRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("item round trip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		item := domain.Item{
			ID:          uuid.NewString(),
			OwnerID:     uuid.NewString(),
			Title:       "pressure washer",
			PricePerDay: decimal.RequireFromString("14.25"),
			CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		}
		if err := repo.CreateItem(ctx, item); err != nil {
			t.Fatalf("create: %v", err)
		}

		got, err := repo.GetItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Title != item.Title || got.OwnerID != item.OwnerID {
			t.Fatalf("unexpected item: %+v", got)
		}
		if !got.PricePerDay.Equal(item.PricePerDay) {
			t.Fatalf("expected price %s, got %s", item.PricePerDay, got.PricePerDay)
		}
	})

	t.Run("GetItem maps misses", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.GetItem(ctx, "00000000-0000-0000-0000-000000000001"); !errors.Is(err, domain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if _, err := repo.GetItem(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("ListItems newest first", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		older := domain.Item{
			ID:          uuid.NewString(),
			OwnerID:     uuid.NewString(),
			Title:       "older",
			PricePerDay: decimal.NewFromInt(1),
			CreatedAt:   time.Now().UTC().Add(-time.Hour),
		}
		newer := older
		newer.ID = uuid.NewString()
		newer.Title = "newer"
		newer.CreatedAt = time.Now().UTC()

		for _, item := range []domain.Item{older, newer} {
			if err := repo.CreateItem(ctx, item); err != nil {
				t.Fatalf("create %s: %v", item.Title, err)
			}
		}

		items, err := repo.ListItems(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 2 || items[0].Title != "newer" || items[1].Title != "older" {
			t.Fatalf("unexpected order: %+v", items)
		}
	})
}
