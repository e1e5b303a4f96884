package handler

import (
	"net/http"

	"github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

// Comparison serves the plan-vs-actual view: per-category budget rows, a
// per-day schedule diff, and the overall summary.
func (h *Handlers) Comparison(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	comparison, err := h.Analytics.Comparison(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "analytics.comparison", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusOK, comparison)
}
