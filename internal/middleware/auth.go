package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/AnshRaj112/placement-tracker-backend/internal/metrics"
	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/services"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
	"github.com/rs/zerolog/log"
)

const (
	MsgNoToken     = "Not authorized, no token"
	MsgTokenFailed = "Not authorized, token failed"
)

type contextKey string

const (
	userContextKey   = contextKey("user")
	claimsContextKey = contextKey("claims")
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *services.Claims, error)
}

// Protect rejects requests without a valid bearer token. On success exactly
// one user, with its password hash cleared, is attached to the context.
func Protect(auth Authenticator, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				m.AuthFailure("no_token")
				utils.WriteMessage(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			user, claims, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				reason := failureReason(err)
				m.AuthFailure(reason)
				event := log.Warn()
				if reason == "lookup_error" {
					event = log.Error()
				}
				event.Err(err).Str("reason", reason).Str("path", r.URL.Path).Msg("token rejected")
				utils.WriteMessage(w, http.StatusUnauthorized, MsgTokenFailed)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			ctx = context.WithValue(ctx, claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user attached by Protect.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok && user != nil
}

// ClaimsFromContext returns the verified token claims attached by Protect.
func ClaimsFromContext(ctx context.Context) (*services.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*services.Claims)
	return claims, ok && claims != nil
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		return "expired"
	case errors.Is(err, services.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, services.ErrSubjectNotFound):
		return "subject_not_found"
	case errors.Is(err, services.ErrTokenInvalid):
		return "invalid"
	default:
		return "lookup_error"
	}
}
