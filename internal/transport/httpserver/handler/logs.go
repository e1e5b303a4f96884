package handler

import (
	"net/http"
	"time"

	triplogsdomain "github.com/simseulnyang/TripNote/internal/domain/triplogs"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type tripLogRequest struct {
	DestinationID  *string  `json:"destination_id"`
	PlaceName      string   `json:"place_name"`
	Address        string   `json:"address"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	VisitDate      string   `json:"visit_date"`
	VisitTime      *string  `json:"visit_time"`
	ActualDuration *int     `json:"actual_duration"`
	Rating         *int     `json:"rating"`
	Review         string   `json:"review"`
	VisitStatus    string   `json:"visit_status"`
	PhotoURLs      []string `json:"photo_urls"`
}

type tripLogPhotoResponse struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
	Order    int    `json:"order"`
}

type tripLogResponse struct {
	ID               string                 `json:"id"`
	TripID           string                 `json:"trip_id"`
	DestinationID    *string                `json:"destination_id"`
	PlaceName        string                 `json:"place_name"`
	Address          string                 `json:"address"`
	Latitude         *float64               `json:"latitude"`
	Longitude        *float64               `json:"longitude"`
	VisitDate        string                 `json:"visit_date"`
	VisitTime        *string                `json:"visit_time"`
	DayNumber        *int                   `json:"day_number"`
	ActualDuration   *int                   `json:"actual_duration"`
	Rating           *int                   `json:"rating"`
	Review           string                 `json:"review"`
	VisitStatus      string                 `json:"visit_status"`
	VisitStatusLabel string                 `json:"visit_status_display"`
	Photos           []tripLogPhotoResponse `json:"photos"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

type tripLogListResponse struct {
	Items []tripLogResponse `json:"items"`
	Total int               `json:"total"`
}

func toTripLogResponse(log triplogsdomain.TripLogWithPhotos) tripLogResponse {
	photos := make([]tripLogPhotoResponse, 0, len(log.Photos))
	for _, photo := range log.Photos {
		photos = append(photos, tripLogPhotoResponse{
			ID:       photo.ID,
			ImageURL: photo.ImageURL,
			Caption:  photo.Caption,
			Order:    photo.Order,
		})
	}
	return tripLogResponse{
		ID:               log.ID,
		TripID:           log.TripID,
		DestinationID:    log.DestinationID,
		PlaceName:        log.PlaceName,
		Address:          log.Address,
		Latitude:         log.Latitude,
		Longitude:        log.Longitude,
		VisitDate:        formatDate(log.VisitDate),
		VisitTime:        log.VisitTime,
		DayNumber:        log.DayNumber,
		ActualDuration:   log.ActualDuration,
		Rating:           log.Rating,
		Review:           log.Review,
		VisitStatus:      log.VisitStatus,
		VisitStatusLabel: triplogsdomain.VisitStatusLabels[log.VisitStatus],
		Photos:           photos,
		CreatedAt:        log.CreatedAt,
		UpdatedAt:        log.UpdatedAt,
	}
}

func (h *Handlers) tripLogInput(w http.ResponseWriter, r *http.Request) (triplogsdomain.TripLogInput, bool) {
	var req tripLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return triplogsdomain.TripLogInput{}, false
	}

	visitDate, err := parseDateRequired(req.VisitDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid visit_date")
		return triplogsdomain.TripLogInput{}, false
	}

	return triplogsdomain.TripLogInput{
		DestinationID:  req.DestinationID,
		PlaceName:      req.PlaceName,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		VisitDate:      visitDate,
		VisitTime:      req.VisitTime,
		ActualDuration: req.ActualDuration,
		Rating:         req.Rating,
		Review:         req.Review,
		VisitStatus:    req.VisitStatus,
		PhotoURLs:      req.PhotoURLs,
	}, true
}

func (h *Handlers) ListTripLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	logs, err := h.Logs.ListLogs(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "logs.list", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	items := make([]tripLogResponse, 0, len(logs))
	for _, log := range logs {
		items = append(items, toTripLogResponse(log))
	}
	writeJSON(w, http.StatusOK, tripLogListResponse{Items: items, Total: len(items)})
}

func (h *Handlers) CreateTripLog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	input, ok := h.tripLogInput(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	log, err := h.Logs.CreateLog(r.Context(), user.ID, tripID, input)
	if err != nil {
		h.serviceError(w, "logs.create", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusCreated, toTripLogResponse(*log))
}

func (h *Handlers) GetTripLog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	logID := chi.URLParam(r, "log_id")
	log, err := h.Logs.GetLog(r.Context(), user.ID, logID)
	if err != nil {
		h.serviceError(w, "logs.get", err, "user_id", user.ID, "log_id", logID)
		return
	}
	if log.TripID != tripID {
		writeError(w, http.StatusNotFound, "log_not_found", "trip log not found")
		return
	}

	writeJSON(w, http.StatusOK, toTripLogResponse(*log))
}

func (h *Handlers) UpdateTripLog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	input, ok := h.tripLogInput(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	logID := chi.URLParam(r, "log_id")
	existing, err := h.Logs.GetLog(r.Context(), user.ID, logID)
	if err != nil {
		h.serviceError(w, "logs.update", err, "user_id", user.ID, "log_id", logID)
		return
	}
	if existing.TripID != tripID {
		writeError(w, http.StatusNotFound, "log_not_found", "trip log not found")
		return
	}

	log, err := h.Logs.UpdateLog(r.Context(), user.ID, logID, input)
	if err != nil {
		h.serviceError(w, "logs.update", err, "user_id", user.ID, "log_id", logID)
		return
	}

	writeJSON(w, http.StatusOK, toTripLogResponse(*log))
}

func (h *Handlers) DeleteTripLog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	logID := chi.URLParam(r, "log_id")
	existing, err := h.Logs.GetLog(r.Context(), user.ID, logID)
	if err != nil {
		h.serviceError(w, "logs.delete", err, "user_id", user.ID, "log_id", logID)
		return
	}
	if existing.TripID != tripID {
		writeError(w, http.StatusNotFound, "log_not_found", "trip log not found")
		return
	}

	if err := h.Logs.DeleteLog(r.Context(), user.ID, logID); err != nil {
		h.serviceError(w, "logs.delete", err, "user_id", user.ID, "log_id", logID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
