package handler

import (
	"net/http"
	"time"

	userdomain "github.com/simseulnyang/TripNote/internal/domain/user"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
)

type updateProfileRequest struct {
	Nickname     *string `json:"nickname"`
	ProfileImage *string `json:"profile_image"`
}

type profileResponse struct {
	ID           string    `json:"id"`
	Email        *string   `json:"email"`
	Nickname     *string   `json:"nickname"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProfileResponse(profile userdomain.Profile) profileResponse {
	return profileResponse{
		ID:           profile.ID,
		Email:        profile.Email,
		Nickname:     profile.Nickname,
		ProfileImage: profile.ProfileImage,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}

// AuthMe echoes the verified caller as seen by the identity provider.
func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"avatar_url": user.AvatarURL,
	})
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	profile, err := h.Users.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.serviceError(w, "users.get", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(*profile))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	profile, err := h.Users.UpdateProfile(r.Context(), userdomain.UpdateProfileInput{
		UserID:       user.ID,
		Nickname:     req.Nickname,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		h.serviceError(w, "users.update", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(*profile))
}

// DeleteAccount withdraws the caller's account; owned trips cascade away in
// the database.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Users.DeleteAccount(r.Context(), user.ID); err != nil {
		h.serviceError(w, "users.delete", err, "user_id", user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
