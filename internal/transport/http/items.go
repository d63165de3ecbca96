package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/peergear/rental-api/internal/app"
	"github.com/peergear/rental-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ItemCatalog is the minimal interface needed for item registration and
// listing.
type ItemCatalog interface {
	CreateItem(ctx context.Context, in app.CreateItemInput) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// HandleItems returns the handler for GET/POST /items.
func HandleItems(svc ItemCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items, err := svc.ListItems(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]itemResponse, 0, len(items))
			for _, item := range items {
				resp = append(resp, itemPayload(item))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createItemRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			price, err := decimal.NewFromString(req.PricePerDay)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid price_per_day")
				return
			}

			item, err := svc.CreateItem(r.Context(), app.CreateItemInput{
				OwnerID:     req.OwnerID,
				Title:       req.Title,
				PricePerDay: price,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(itemPayload(item))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

type createItemRequest struct {
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	PricePerDay string `json:"price_per_day"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	PricePerDay string    `json:"price_per_day"`
	CreatedAt   time.Time `json:"created_at"`
}

func itemPayload(item domain.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		Title:       item.Title,
		PricePerDay: item.PricePerDay.String(),
		CreatedAt:   item.CreatedAt,
	}
}
