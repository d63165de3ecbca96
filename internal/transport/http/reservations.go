package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/peergear/rental-api/internal/app"
	"github.com/peergear/rental-api/internal/domain"
)

const callerHeader = "X-User-ID"

// ReservationCreator is the minimal interface needed to create reservations.
type ReservationCreator interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.Reservation, error)
}

// ReservationManager is the minimal interface for reads and status
// transitions on existing reservations.
type ReservationManager interface {
	GetReservation(ctx context.Context, reservationID string) (domain.Reservation, error)
	Confirm(ctx context.Context, reservationID string) (domain.Reservation, error)
	Cancel(ctx context.Context, reservationID, callerID string) (domain.Reservation, error)
	Complete(ctx context.Context, reservationID string) (domain.Reservation, error)
}

// HandleCreateReservation returns the handler for POST /reservations. The
// request must carry a payment reference obtained from the payment
// collaborator beforehand; this service never calls out to payment itself.
func HandleCreateReservation(svc ReservationCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createReservationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ItemID == "" || req.RenterID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "item_id and renter_id are required")
			return
		}

		checkIn, err := domain.ParseDate(req.CheckIn)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid check_in date")
			return
		}
		checkOut, err := domain.ParseDate(req.CheckOut)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid check_out date")
			return
		}

		res, err := svc.Reserve(r.Context(), app.ReserveInput{
			ItemID:           req.ItemID,
			RenterID:         req.RenterID,
			CheckIn:          checkIn,
			CheckOut:         checkOut,
			PaymentReference: req.PaymentReference,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(reservationPayload(res))
	}
}

// HandleReservation returns the handler for /reservations/{id} and the
// status-transition subroutes confirm, cancel and complete.
func HandleReservation(svc ReservationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservationID, action, ok := parseReservationPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			res, err := svc.GetReservation(r.Context(), reservationID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(reservationPayload(res))
			return
		case "confirm", "cancel", "complete":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}

			var res domain.Reservation
			var err error
			switch action {
			case "confirm":
				res, err = svc.Confirm(r.Context(), reservationID)
			case "cancel":
				callerID := r.Header.Get(callerHeader)
				if callerID == "" {
					writeError(w, http.StatusUnauthorized, codeCallerRequired, "caller identity required")
					return
				}
				res, err = svc.Cancel(r.Context(), reservationID, callerID)
			case "complete":
				res, err = svc.Complete(r.Context(), reservationID)
			}
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(reservationPayload(res))
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
	}
}

func parseReservationPath(path string) (id, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "reservations" || parts[1] == "" {
		return "", "", false
	}
	if len(parts) == 2 {
		return parts[1], "", true
	}
	return parts[1], parts[2], true
}

type createReservationRequest struct {
	ItemID           string `json:"item_id"`
	RenterID         string `json:"renter_id"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	PaymentReference string `json:"payment_reference"`
}

type reservationResponse struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"item_id"`
	RenterID         string    `json:"renter_id"`
	OwnerID          string    `json:"owner_id"`
	CheckIn          string    `json:"check_in"`
	CheckOut         string    `json:"check_out"`
	Nights           int       `json:"nights"`
	TotalPrice       string    `json:"total_price"`
	Status           string    `json:"status"`
	PaymentReference string    `json:"payment_reference"`
	CreatedAt        time.Time `json:"created_at"`
}

func reservationPayload(res domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:               res.ID,
		ItemID:           res.ItemID,
		RenterID:         res.RenterID,
		OwnerID:          res.OwnerID,
		CheckIn:          res.CheckIn.String(),
		CheckOut:         res.CheckOut.String(),
		Nights:           res.Nights(),
		TotalPrice:       res.TotalPrice.String(),
		Status:           string(res.Status),
		PaymentReference: res.PaymentReference,
		CreatedAt:        res.CreatedAt,
	}
}
