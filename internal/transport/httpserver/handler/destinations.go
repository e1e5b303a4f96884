package handler

import (
	"net/http"
	"time"

	tripsdomain "github.com/simseulnyang/TripNote/internal/domain/trips"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type destinationRequest struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Day               int      `json:"day"`
	Order             int      `json:"order"`
	PlannedTime       *string  `json:"planned_time"`
	EstimatedDuration *int     `json:"estimated_duration"`
	EstimatedCost     int64    `json:"estimated_cost"`
	Category          string   `json:"category"`
	Memo              string   `json:"memo"`
}

type destinationResponse struct {
	ID                string    `json:"id"`
	TripID            string    `json:"trip_id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	Day               int       `json:"day"`
	Order             int       `json:"order"`
	PlannedTime       *string   `json:"planned_time"`
	EstimatedDuration *int      `json:"estimated_duration"`
	EstimatedCost     int64     `json:"estimated_cost"`
	Category          string    `json:"category"`
	CategoryLabel     string    `json:"category_display"`
	Memo              string    `json:"memo"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type destinationListResponse struct {
	Items []destinationResponse `json:"items"`
	Total int                   `json:"total"`
}

func toDestinationInput(req destinationRequest) tripsdomain.DestinationInput {
	return tripsdomain.DestinationInput{
		Name:              req.Name,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Day:               req.Day,
		Order:             req.Order,
		PlannedTime:       req.PlannedTime,
		EstimatedDuration: req.EstimatedDuration,
		EstimatedCost:     req.EstimatedCost,
		Category:          req.Category,
		Memo:              req.Memo,
	}
}

func toDestinationResponse(destination tripsdomain.Destination) destinationResponse {
	return destinationResponse{
		ID:                destination.ID,
		TripID:            destination.TripID,
		Name:              destination.Name,
		Address:           destination.Address,
		Latitude:          destination.Latitude,
		Longitude:         destination.Longitude,
		Day:               destination.Day,
		Order:             destination.Order,
		PlannedTime:       destination.PlannedTime,
		EstimatedDuration: destination.EstimatedDuration,
		EstimatedCost:     destination.EstimatedCost,
		Category:          destination.Category,
		CategoryLabel:     tripsdomain.DestinationCategoryLabels[destination.Category],
		Memo:              destination.Memo,
		CreatedAt:         destination.CreatedAt,
		UpdatedAt:         destination.UpdatedAt,
	}
}

func (h *Handlers) ListDestinations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	destinations, err := h.Trips.ListDestinations(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "destinations.list", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	items := make([]destinationResponse, 0, len(destinations))
	for _, destination := range destinations {
		items = append(items, toDestinationResponse(destination))
	}
	writeJSON(w, http.StatusOK, destinationListResponse{Items: items, Total: len(items)})
}

func (h *Handlers) CreateDestination(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req destinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	destination, err := h.Trips.AddDestination(r.Context(), user.ID, tripID, toDestinationInput(req))
	if err != nil {
		h.serviceError(w, "destinations.create", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusCreated, toDestinationResponse(*destination))
}

func (h *Handlers) GetDestination(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	destinationID := chi.URLParam(r, "destination_id")
	destination, err := h.Trips.GetTripDestination(r.Context(), user.ID, tripID, destinationID)
	if err != nil {
		h.serviceError(w, "destinations.get", err, "user_id", user.ID, "destination_id", destinationID)
		return
	}

	writeJSON(w, http.StatusOK, toDestinationResponse(*destination))
}

func (h *Handlers) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req destinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	destinationID := chi.URLParam(r, "destination_id")
	if _, err := h.Trips.GetTripDestination(r.Context(), user.ID, tripID, destinationID); err != nil {
		h.serviceError(w, "destinations.update", err, "user_id", user.ID, "destination_id", destinationID)
		return
	}

	destination, err := h.Trips.UpdateDestination(r.Context(), user.ID, destinationID, toDestinationInput(req))
	if err != nil {
		h.serviceError(w, "destinations.update", err, "user_id", user.ID, "destination_id", destinationID)
		return
	}

	writeJSON(w, http.StatusOK, toDestinationResponse(*destination))
}

func (h *Handlers) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	destinationID := chi.URLParam(r, "destination_id")
	if _, err := h.Trips.GetTripDestination(r.Context(), user.ID, tripID, destinationID); err != nil {
		h.serviceError(w, "destinations.delete", err, "user_id", user.ID, "destination_id", destinationID)
		return
	}

	if err := h.Trips.DeleteDestination(r.Context(), user.ID, destinationID); err != nil {
		h.serviceError(w, "destinations.delete", err, "user_id", user.ID, "destination_id", destinationID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
