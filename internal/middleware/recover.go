package middleware

import (
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

const MsgServerError = "Server error"

// Recover converts a panic into a JSON 500. The stack goes to the log only.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Str("request_id", chimw.GetReqID(r.Context())).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				utils.WriteMessage(w, http.StatusInternalServerError, MsgServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
