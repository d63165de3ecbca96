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

// RuleManager is the minimal interface for owner-facing availability
// configuration.
type RuleManager interface {
	AllowedWeekdays(ctx context.Context, itemID string) ([]time.Weekday, error)
	SetAllowedWeekdays(ctx context.Context, itemID, callerID string, weekdays []time.Weekday) error
	ListBlackouts(ctx context.Context, itemID string) ([]domain.BlackoutRange, error)
	AddBlackout(ctx context.Context, in app.AddBlackoutInput) (app.AddBlackoutResult, error)
	RemoveBlackout(ctx context.Context, itemID, blackoutID, callerID string) error
}

// CalendarReader is the read surface the calendar endpoint renders from.
type CalendarReader interface {
	ListActiveReservations(ctx context.Context, itemID string, windowStart, windowEnd domain.Date) ([]domain.Reservation, error)
}

// HandleItemAvailability returns the handler for the /items/{id}/... routes:
// the weekday rule, the blackout ranges, and the calendar read surface.
func HandleItemAvailability(rules RuleManager, calendar CalendarReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, rest, ok := parseItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case len(rest) == 1 && rest[0] == "weekdays":
			handleWeekdays(w, r, rules, itemID)
		case len(rest) == 1 && rest[0] == "blackouts":
			handleBlackouts(w, r, rules, itemID)
		case len(rest) == 2 && rest[0] == "blackouts":
			handleBlackoutByID(w, r, rules, itemID, rest[1])
		case len(rest) == 1 && rest[0] == "calendar":
			handleCalendar(w, r, rules, calendar, itemID)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func parseItemPath(path string) (itemID string, rest []string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "items" || parts[1] == "" {
		return "", nil, false
	}
	return parts[1], parts[2:], true
}

func handleWeekdays(w http.ResponseWriter, r *http.Request, rules RuleManager, itemID string) {
	switch r.Method {
	case http.MethodGet:
		weekdays, err := rules.AllowedWeekdays(r.Context(), itemID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(weekdaysResponse{AllowedWeekdays: weekdayInts(weekdays)})
	case http.MethodPut:
		callerID := r.Header.Get(callerHeader)
		if callerID == "" {
			writeError(w, http.StatusUnauthorized, codeCallerRequired, "caller identity required")
			return
		}

		var req weekdaysRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		weekdays := make([]time.Weekday, 0, len(req.AllowedWeekdays))
		for _, v := range req.AllowedWeekdays {
			weekdays = append(weekdays, time.Weekday(v))
		}

		if err := rules.SetAllowedWeekdays(r.Context(), itemID, callerID, weekdays); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func handleBlackouts(w http.ResponseWriter, r *http.Request, rules RuleManager, itemID string) {
	switch r.Method {
	case http.MethodGet:
		blackouts, err := rules.ListBlackouts(r.Context(), itemID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]blackoutResponse, 0, len(blackouts))
		for _, b := range blackouts {
			resp = append(resp, blackoutPayload(b))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	case http.MethodPost:
		callerID := r.Header.Get(callerHeader)
		if callerID == "" {
			writeError(w, http.StatusUnauthorized, codeCallerRequired, "caller identity required")
			return
		}

		var req createBlackoutRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		start, err := domain.ParseDate(req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid start_date")
			return
		}
		end, err := domain.ParseDate(req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid end_date")
			return
		}

		result, err := rules.AddBlackout(r.Context(), app.AddBlackoutInput{
			ItemID:   itemID,
			CallerID: callerID,
			Start:    start,
			End:      end,
			Reason:   req.Reason,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := createBlackoutResponse{Blackout: blackoutPayload(result.Blackout)}
		for _, res := range result.AffectedReservations {
			resp.AffectedReservations = append(resp.AffectedReservations, reservationPayload(res))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func handleBlackoutByID(w http.ResponseWriter, r *http.Request, rules RuleManager, itemID, blackoutID string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	callerID := r.Header.Get(callerHeader)
	if callerID == "" {
		writeError(w, http.StatusUnauthorized, codeCallerRequired, "caller identity required")
		return
	}
	if err := rules.RemoveBlackout(r.Context(), itemID, blackoutID, callerID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleCalendar(w http.ResponseWriter, r *http.Request, rules RuleManager, calendar CalendarReader, itemID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	from, err := domain.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid from date")
		return
	}
	to, err := domain.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid to date")
		return
	}

	weekdays, err := rules.AllowedWeekdays(r.Context(), itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	blackouts, err := rules.ListBlackouts(r.Context(), itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	reservations, err := calendar.ListActiveReservations(r.Context(), itemID, from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := calendarResponse{
		ItemID:          itemID,
		AllowedWeekdays: weekdayInts(weekdays),
	}
	for _, b := range blackouts {
		resp.Blackouts = append(resp.Blackouts, blackoutPayload(b))
	}
	for _, res := range reservations {
		resp.Reservations = append(resp.Reservations, reservationPayload(res))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type weekdaysRequest struct {
	AllowedWeekdays []int `json:"allowed_weekdays"`
}

type weekdaysResponse struct {
	AllowedWeekdays []int `json:"allowed_weekdays"`
}

type createBlackoutRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type blackoutResponse struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
}

type createBlackoutResponse struct {
	Blackout blackoutResponse `json:"blackout"`
	// AffectedReservations lists active reservations that now fall inside
	// the new blackout. They are not cancelled; the owner must resolve them.
	AffectedReservations []reservationResponse `json:"affected_reservations,omitempty"`
}

type calendarResponse struct {
	ItemID          string                `json:"item_id"`
	AllowedWeekdays []int                 `json:"allowed_weekdays"`
	Blackouts       []blackoutResponse    `json:"blackouts"`
	Reservations    []reservationResponse `json:"reservations"`
}

func blackoutPayload(b domain.BlackoutRange) blackoutResponse {
	return blackoutResponse{
		ID:        b.ID,
		ItemID:    b.ItemID,
		StartDate: b.StartDate.String(),
		EndDate:   b.EndDate.String(),
		Reason:    b.Reason,
	}
}
