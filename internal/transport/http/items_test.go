package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/peergear/rental-api/internal/app"
	"github.com/peergear/rental-api/internal/domain"
	"github.com/shopspring/decimal"
)

func TestHandleItems(t *testing.T) {
	t.Parallel()

	item := domain.Item{
		ID:          "item-1",
		OwnerID:     "owner-1",
		Title:       "cargo bike",
		PricePerDay: decimal.RequireFromString("39.99"),
	}

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		svc := &stubItemCatalog{items: []domain.Item{item}}
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		rec := httptest.NewRecorder()

		HandleItems(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"price_per_day":"39.99"`) {
			t.Fatalf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		svc := &stubItemCatalog{created: item}
		req := httptest.NewRequest(http.MethodPost, "/items",
			bytes.NewBufferString(`{"owner_id":"owner-1","title":"cargo bike","price_per_day":"39.99"}`))
		rec := httptest.NewRecorder()

		HandleItems(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !svc.gotInput.PricePerDay.Equal(decimal.RequireFromString("39.99")) {
			t.Fatalf("expected parsed price, got %s", svc.gotInput.PricePerDay)
		}
	})

	t.Run("create with unparseable price", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/items",
			bytes.NewBufferString(`{"owner_id":"owner-1","title":"cargo bike","price_per_day":"forty"}`))
		rec := httptest.NewRecorder()

		HandleItems(&stubItemCatalog{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("create without title", func(t *testing.T) {
		t.Parallel()
		svc := &stubItemCatalog{err: domain.ErrTitleRequired}
		req := httptest.NewRequest(http.MethodPost, "/items",
			bytes.NewBufferString(`{"owner_id":"owner-1","title":"","price_per_day":"10"}`))
		rec := httptest.NewRecorder()

		HandleItems(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "title_required") {
			t.Fatalf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("delete method not allowed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodDelete, "/items", nil)
		rec := httptest.NewRecorder()

		HandleItems(&stubItemCatalog{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("list failure maps to 503", func(t *testing.T) {
		t.Parallel()
		svc := &stubItemCatalog{err: domain.ErrUnavailable}
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		rec := httptest.NewRecorder()

		HandleItems(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

type stubItemCatalog struct {
	items    []domain.Item
	created  domain.Item
	err      error
	gotInput app.CreateItemInput
}

func (s *stubItemCatalog) CreateItem(_ context.Context, in app.CreateItemInput) (domain.Item, error) {
	s.gotInput = in
	if s.err != nil {
		return domain.Item{}, s.err
	}
	return s.created, nil
}

func (s *stubItemCatalog) ListItems(_ context.Context) ([]domain.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}
