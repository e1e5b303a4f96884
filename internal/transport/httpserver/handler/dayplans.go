package handler

import (
	"net/http"
	"time"

	tripsdomain "github.com/simseulnyang/TripNote/internal/domain/trips"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type updateDayPlanRequest struct {
	Memo string `json:"memo"`
}

type dayPlanResponse struct {
	ID            string                `json:"id"`
	TripID        string                `json:"trip_id"`
	DayNumber     int                   `json:"day_number"`
	Date          string                `json:"date"`
	Memo          string                `json:"memo"`
	EstimatedCost int64                 `json:"estimated_cost"`
	Destinations  []destinationResponse `json:"destinations"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type dayPlanListResponse struct {
	Items []dayPlanResponse `json:"items"`
	Total int               `json:"total"`
}

func toDayPlanResponse(view tripsdomain.DayPlanView) dayPlanResponse {
	destinations := make([]destinationResponse, 0, len(view.Destinations))
	for _, destination := range view.Destinations {
		destinations = append(destinations, toDestinationResponse(destination))
	}
	return dayPlanResponse{
		ID:            view.ID,
		TripID:        view.TripID,
		DayNumber:     view.DayNumber,
		Date:          formatDate(view.Date),
		Memo:          view.Memo,
		EstimatedCost: view.EstimatedCost,
		Destinations:  destinations,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
	}
}

func (h *Handlers) ListDayPlans(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	views, err := h.Trips.ListDayPlans(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "days.list", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	items := make([]dayPlanResponse, 0, len(views))
	for _, view := range views {
		items = append(items, toDayPlanResponse(view))
	}
	writeJSON(w, http.StatusOK, dayPlanListResponse{Items: items, Total: len(items)})
}

func (h *Handlers) UpdateDayPlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateDayPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	dayNumber, err := parseIntPath(chi.URLParam(r, "day_number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid day number")
		return
	}

	plan, err := h.Trips.UpdateDayPlanMemo(r.Context(), user.ID, tripID, dayNumber, req.Memo)
	if err != nil {
		h.serviceError(w, "days.update", err, "user_id", user.ID, "trip_id", tripID, "day_number", dayNumber)
		return
	}

	writeJSON(w, http.StatusOK, toDayPlanResponse(tripsdomain.DayPlanView{DayPlan: *plan, Destinations: []tripsdomain.Destination{}}))
}
