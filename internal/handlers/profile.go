package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AnshRaj112/placement-tracker-backend/internal/middleware"
	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/services"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

// StatsResponse wraps the stats payload.
type StatsResponse struct {
	Success bool          `json:"success"`
	Data    *models.Stats `json:"data,omitempty"`
	Message string        `json:"message,omitempty"`
}

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me handles GET /api/profile/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	profile, err := h.profiles.Get(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "Profile")
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}

// UpdateMe handles PUT /api/profile/me
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var upd models.ProfileUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	profile, err := h.profiles.Update(r.Context(), user, upd)
	if err != nil {
		writeError(w, r, err, "Profile")
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}

// Stats handles GET /api/profile/stats
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	stats, err := h.profiles.Stats(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to compute stats")
		utils.WriteJSON(w, http.StatusInternalServerError, StatsResponse{Success: false, Message: MsgServerError})
		return
	}
	utils.WriteJSON(w, http.StatusOK, StatsResponse{Success: true, Data: stats})
}
