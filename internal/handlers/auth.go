package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AnshRaj112/placement-tracker-backend/internal/middleware"
	"github.com/AnshRaj112/placement-tracker-backend/internal/services"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

// RegisterRequest accepts either fullName or name; fullName wins.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := req.FullName
	if name == "" {
		name = req.Name
	}

	res, err := h.auth.Register(r.Context(), services.RegisterInput{
		Name:     name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err, "User")
		return
	}

	log.Info().Str("user_id", res.User.ID).Msg("user registered")
	utils.WriteJSON(w, http.StatusOK, res)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, "User")
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, MsgNotAuthenticated)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Logout handles POST /api/auth/logout. The token stays usable until it
// expires unless a Redis denylist is configured.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, MsgNotAuthenticated)
		return
	}
	if err := h.auth.Logout(r.Context(), claims); err != nil {
		writeError(w, r, err, "Session")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Logged out")
}
