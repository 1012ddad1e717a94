package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Root handles GET /
func Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("this is root route.."))
}

// Health handles GET /api/health. With a store attached, an unreachable store
// turns the response into a 503.
func Health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health check: store unreachable")
				utils.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "error", Message: "Database unavailable"})
				return
			}
		}
		utils.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Message: "Server is running"})
	}
}
