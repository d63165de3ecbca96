package app

import (
	"context"

	"github.com/peergear/rental-api/internal/clock"
	"github.com/peergear/rental-api/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	CreateItem(ctx context.Context, item domain.Item) error
	GetItem(ctx context.Context, itemID string) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// CatalogService registers and lists rentable items. The booking core only
// needs the owner and the daily price from here.
type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type CreateItemInput struct {
	OwnerID     string
	Title       string
	PricePerDay decimal.Decimal
}

func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (domain.Item, error) {
	if in.OwnerID == "" {
		return domain.Item{}, domain.ErrOwnerRequired
	}
	if in.Title == "" {
		return domain.Item{}, domain.ErrTitleRequired
	}
	if in.PricePerDay.IsNegative() {
		return domain.Item{}, domain.ErrNegativePrice
	}

	item := domain.Item{
		ID:          newID(),
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		PricePerDay: in.PricePerDay,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return domain.Item{}, wrapUnavailable(err)
	}
	return item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, itemID string) (domain.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return domain.Item{}, wrapUnavailable(err)
	}
	return item, nil
}

func (s *CatalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return items, nil
}
