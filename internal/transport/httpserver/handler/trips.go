package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	expensesdomain "github.com/simseulnyang/TripNote/internal/domain/expenses"
	tripsdomain "github.com/simseulnyang/TripNote/internal/domain/trips"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createTripRequest struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Thumbnail    *string              `json:"thumbnail"`
	IsPublic     bool                 `json:"is_public"`
	Destinations []destinationRequest `json:"destinations"`
	Budgets      []budgetRequest      `json:"budgets"`
}

type updateTripRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	StartDate   *string         `json:"start_date"`
	EndDate     *string         `json:"end_date"`
	Thumbnail   json.RawMessage `json:"thumbnail"`
	IsPublic    *bool           `json:"is_public"`
	Status      *string         `json:"status"`
}

type tripResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	DurationDays int       `json:"duration_days"`
	Thumbnail    *string   `json:"thumbnail"`
	IsPublic     bool      `json:"is_public"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"status_display"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type tripListItem struct {
	tripResponse
	TotalBudget        int64   `json:"total_budget"`
	TotalExpense       int64   `json:"total_expense"`
	BudgetUsagePercent float64 `json:"budget_usage_percent"`
}

type tripDetailResponse struct {
	tripListItem
	Destinations []destinationResponse `json:"destinations"`
}

type tripListResponse struct {
	Items []tripListItem `json:"items"`
	Total int            `json:"total"`
}

func toTripResponse(trip tripsdomain.Trip) tripResponse {
	return tripResponse{
		ID:           trip.ID,
		Title:        trip.Title,
		Description:  trip.Description,
		StartDate:    formatDate(trip.StartDate),
		EndDate:      formatDate(trip.EndDate),
		DurationDays: trip.DurationDays(),
		Thumbnail:    trip.Thumbnail,
		IsPublic:     trip.IsPublic,
		Status:       trip.Status,
		StatusLabel:  tripsdomain.StatusLabels[trip.Status],
		CreatedAt:    trip.CreatedAt,
		UpdatedAt:    trip.UpdatedAt,
	}
}

func (h *Handlers) ListTrips(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	trips, err := h.Trips.ListTrips(r.Context(), user.ID)
	if err != nil {
		h.serviceError(w, "trips.list", err, "user_id", user.ID)
		return
	}

	tripIDs := make([]string, 0, len(trips))
	for _, trip := range trips {
		tripIDs = append(tripIDs, trip.ID)
	}
	totals, err := h.Analytics.TotalsByTripIDs(r.Context(), tripIDs)
	if err != nil {
		h.serviceError(w, "trips.list: totals", err, "user_id", user.ID)
		return
	}

	items := make([]tripListItem, 0, len(trips))
	for _, trip := range trips {
		tripTotals := totals[trip.ID]
		items = append(items, tripListItem{
			tripResponse:       toTripResponse(trip),
			TotalBudget:        tripTotals.TotalBudget,
			TotalExpense:       tripTotals.TotalExpense,
			BudgetUsagePercent: tripTotals.UsagePercent,
		})
	}

	writeJSON(w, http.StatusOK, tripListResponse{Items: items, Total: len(items)})
}

func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	startDate, err := parseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := parseDateRequired(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	budgets := make([]expensesdomain.SetBudgetInput, 0, len(req.Budgets))
	for _, budget := range req.Budgets {
		input := expensesdomain.SetBudgetInput{
			UserID:   user.ID,
			Category: budget.Category,
			Amount:   budget.Amount,
			Memo:     budget.Memo,
		}
		if err := h.Expenses.ValidateBudget(input); err != nil {
			h.serviceError(w, "trips.create: budget", err, "user_id", user.ID)
			return
		}
		budgets = append(budgets, input)
	}

	input := tripsdomain.CreateTripInput{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Thumbnail:   req.Thumbnail,
		IsPublic:    req.IsPublic,
	}
	for _, destination := range req.Destinations {
		input.Destinations = append(input.Destinations, toDestinationInput(destination))
	}

	trip, err := h.Trips.CreateTrip(r.Context(), input)
	if err != nil {
		h.serviceError(w, "trips.create", err, "user_id", user.ID)
		return
	}

	for _, budget := range budgets {
		budget.TripID = trip.ID
		if _, _, err := h.Expenses.SetBudget(r.Context(), budget); err != nil {
			h.serviceError(w, "trips.create: set budget", err, "user_id", user.ID, "trip_id", trip.ID)
			return
		}
	}

	h.writeTripDetail(w, r, http.StatusCreated, user.ID, *trip)
}

func (h *Handlers) GetTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	trip, err := h.Trips.GetTrip(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "trips.get", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	h.writeTripDetail(w, r, http.StatusOK, user.ID, *trip)
}

func (h *Handlers) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	startDate, err := parseDateOptional(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := parseDateOptional(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	thumbnail, err := parseNullableString(req.Thumbnail)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid thumbnail")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	trip, err := h.Trips.UpdateTrip(r.Context(), tripsdomain.UpdateTripInput{
		UserID:      user.ID,
		TripID:      tripID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Thumbnail:   thumbnail,
		IsPublic:    req.IsPublic,
		Status:      req.Status,
	})
	if err != nil {
		h.serviceError(w, "trips.update", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	h.writeTripDetail(w, r, http.StatusOK, user.ID, *trip)
}

func (h *Handlers) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	if err := h.Trips.DeleteTrip(r.Context(), user.ID, tripID); err != nil {
		h.serviceError(w, "trips.delete", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeTripDetail(w http.ResponseWriter, r *http.Request, status int, userID string, trip tripsdomain.Trip) {
	destinations, err := h.Trips.ListDestinations(r.Context(), userID, trip.ID)
	if err != nil {
		h.serviceError(w, "trips.detail: destinations", err, "user_id", userID, "trip_id", trip.ID)
		return
	}
	totals, err := h.Analytics.TotalsByTripIDs(r.Context(), []string{trip.ID})
	if err != nil {
		h.serviceError(w, "trips.detail: totals", err, "user_id", userID, "trip_id", trip.ID)
		return
	}

	items := make([]destinationResponse, 0, len(destinations))
	for _, destination := range destinations {
		items = append(items, toDestinationResponse(destination))
	}

	tripTotals := totals[trip.ID]
	writeJSON(w, status, tripDetailResponse{
		tripListItem: tripListItem{
			tripResponse:       toTripResponse(trip),
			TotalBudget:        tripTotals.TotalBudget,
			TotalExpense:       tripTotals.TotalExpense,
			BudgetUsagePercent: tripTotals.UsagePercent,
		},
		Destinations: items,
	})
}

// parseNullableString keeps "field: null" distinct from the field being
// absent so PATCH can clear the value.
func parseNullableString(raw json.RawMessage) (tripsdomain.OptionalNullableString, error) {
	if len(raw) == 0 {
		return tripsdomain.OptionalNullableString{}, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return tripsdomain.OptionalNullableString{Set: true}, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return tripsdomain.OptionalNullableString{}, err
	}
	return tripsdomain.OptionalNullableString{Set: true, Value: &value}, nil
}
