package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/AnshRaj112/placement-tracker-backend/internal/services"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

const (
	MsgInvalidBody      = "Invalid request body"
	MsgServerError      = "Server error"
	MsgNotAuthenticated = "Not authenticated"
)

// ValidationResponse is the 400 body for rejected input.
type ValidationResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	return true
}

// writeError maps a service or store error to its HTTP response. resource
// names the entity in "<resource> not found".
func writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusBadRequest, ValidationResponse{
			Message: verr.Result.Message(),
			Errors:  verr.Result.Errors,
		})
	case errors.Is(err, services.ErrUserExists):
		utils.WriteMessage(w, http.StatusBadRequest, "User exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrTopicNotFound):
		utils.WriteMessage(w, http.StatusBadRequest, "Topic not found")
	case errors.Is(err, store.ErrNotFound):
		utils.WriteMessage(w, http.StatusNotFound, resource+" not found")
	default:
		log.Error().
			Err(err).
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		utils.WriteMessage(w, http.StatusInternalServerError, MsgServerError)
	}
}
