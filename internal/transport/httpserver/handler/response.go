package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	analyticsdomain "github.com/simseulnyang/TripNote/internal/domain/analytics"
	expensesdomain "github.com/simseulnyang/TripNote/internal/domain/expenses"
	triplogsdomain "github.com/simseulnyang/TripNote/internal/domain/triplogs"
	tripsdomain "github.com/simseulnyang/TripNote/internal/domain/trips"
	userdomain "github.com/simseulnyang/TripNote/internal/domain/user"
	"github.com/simseulnyang/TripNote/internal/validation"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// serviceError maps a domain failure onto the wire: validation failures to
// 400 with the offending field, missing rows to 404, everything else to 500.
func (h *Handlers) serviceError(w http.ResponseWriter, op string, err error, args ...any) {
	if verr, ok := validation.As(err); ok {
		h.log.BusinessError(op+": validation failed", err, args...)
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    "validation_error",
			Message: verr.Message,
			Field:   verr.Field,
		}})
		return
	}

	if code, message, ok := notFound(err); ok {
		h.log.BusinessError(op+": not found", err, args...)
		writeError(w, http.StatusNotFound, code, message)
		return
	}

	h.log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func notFound(err error) (code, message string, ok bool) {
	switch {
	case errors.Is(err, tripsdomain.ErrTripNotFound), errors.Is(err, analyticsdomain.ErrTripNotFound):
		return "trip_not_found", "trip not found", true
	case errors.Is(err, tripsdomain.ErrDestinationNotFound):
		return "destination_not_found", "destination not found", true
	case errors.Is(err, tripsdomain.ErrDayPlanNotFound):
		return "day_plan_not_found", "day plan not found", true
	case errors.Is(err, expensesdomain.ErrBudgetNotFound):
		return "budget_not_found", "budget not found", true
	case errors.Is(err, expensesdomain.ErrExpenseNotFound):
		return "expense_not_found", "expense not found", true
	case errors.Is(err, triplogsdomain.ErrLogNotFound):
		return "log_not_found", "trip log not found", true
	case errors.Is(err, userdomain.ErrUserNotFound):
		return "user_not_found", "user not found", true
	}
	return "", "", false
}
