package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/peergear/rental-api/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidDate         = "invalid_date"
	codeInvalidRange        = "invalid_range"
	codeInvalidWeekday      = "invalid_weekday"
	codeIllegalCheckIn      = "illegal_checkin"
	codeDateConflict        = "date_conflict"
	codeInvalidTransition   = "invalid_transition"
	codePaymentRefRequired  = "payment_reference_required"
	codeOwnerRequired       = "owner_required"
	codeTitleRequired       = "title_required"
	codeNegativePrice       = "negative_price"
	codeInvalidID           = "invalid_id"
	codeCallerRequired      = "caller_required"
	codeUnauthorized        = "unauthorized"
	codeItemNotFound        = "item_not_found"
	codeReservationNotFound = "reservation_not_found"
	codeBlackoutNotFound    = "blackout_not_found"
	codeForbidden           = "forbidden"
	codeUnavailable         = "unavailable"
	codeInternalError       = "internal_error"
)

// errorResponse is the JSON error envelope. The optional fields carry the
// structured detail the UI needs to render actionable guidance without
// re-querying: the allowed weekday set for an illegal check-in, and the
// conflicting ranges plus a suggested check-out for a date conflict.
type errorResponse struct {
	Error             string            `json:"error"`
	Code              string            `json:"code"`
	AllowedWeekdays   []int             `json:"allowed_weekdays,omitempty"`
	Conflicts         []conflictPayload `json:"conflicts,omitempty"`
	AlternateCheckout string            `json:"alternate_checkout,omitempty"`
}

type conflictPayload struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps service-layer errors onto HTTP statuses and codes.
// Unavailable is deliberately distinct from a conflict: a transient outage
// must never read as "those dates are taken".
func writeDomainError(w http.ResponseWriter, err error) {
	var illegalCheckIn *domain.IllegalCheckInError
	if errors.As(err, &illegalCheckIn) {
		writeErrorResponse(w, http.StatusBadRequest, errorResponse{
			Error:           illegalCheckIn.Error(),
			Code:            codeIllegalCheckIn,
			AllowedWeekdays: weekdayInts(illegalCheckIn.Allowed),
		})
		return
	}

	var dateConflict *domain.DateConflictError
	if errors.As(err, &dateConflict) {
		resp := errorResponse{
			Error:     dateConflict.Error(),
			Code:      codeDateConflict,
			Conflicts: conflictPayloads(dateConflict.Conflicts),
		}
		if dateConflict.AlternateCheckout != nil {
			resp.AlternateCheckout = dateConflict.AlternateCheckout.String()
		}
		writeErrorResponse(w, http.StatusConflict, resp)
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidDateFormat):
		writeError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
	case errors.Is(err, domain.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, codeInvalidRange, err.Error())
	case errors.Is(err, domain.ErrInvalidWeekday):
		writeError(w, http.StatusBadRequest, codeInvalidWeekday, err.Error())
	case errors.Is(err, domain.ErrPaymentReferenceRequired):
		writeError(w, http.StatusBadRequest, codePaymentRefRequired, err.Error())
	case errors.Is(err, domain.ErrOwnerRequired):
		writeError(w, http.StatusBadRequest, codeOwnerRequired, err.Error())
	case errors.Is(err, domain.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case errors.Is(err, domain.ErrNegativePrice):
		writeError(w, http.StatusBadRequest, codeNegativePrice, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusForbidden, codeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, codeInvalidTransition, err.Error())
	case errors.Is(err, domain.ErrReservationOverlap):
		writeError(w, http.StatusConflict, codeDateConflict, err.Error())
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
	case errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, codeReservationNotFound, err.Error())
	case errors.Is(err, domain.ErrBlackoutNotFound):
		writeError(w, http.StatusNotFound, codeBlackoutNotFound, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func weekdayInts(weekdays []time.Weekday) []int {
	out := make([]int, 0, len(weekdays))
	for _, wd := range weekdays {
		out = append(out, int(wd))
	}
	return out
}

func conflictPayloads(conflicts []domain.Conflict) []conflictPayload {
	out := make([]conflictPayload, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, conflictPayload{
			Kind:  string(c.Kind),
			ID:    c.ID,
			Start: c.Start.String(),
			End:   c.End.String(),
		})
	}
	return out
}
