package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/placement-tracker-backend/internal/handlers"
	"github.com/AnshRaj112/placement-tracker-backend/internal/metrics"
	"github.com/AnshRaj112/placement-tracker-backend/internal/middleware"
	"github.com/AnshRaj112/placement-tracker-backend/internal/services"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

// Deps holds everything the router wires into handlers and middleware.
type Deps struct {
	Auth     *services.AuthService
	Topics   *services.TopicService
	Problems *services.ProblemService
	Profiles *services.ProfileService

	Store   handlers.Pinger
	Redis   *redis.Client // optional
	Metrics *metrics.Metrics

	AllowedOrigins []string
	RequestTimeout time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
	Production     bool
}

// NewRouter builds the HTTP handler for the API.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recover)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.CORS(d.AllowedOrigins))
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}

	// Production: SecurityHeaders → GlobalRateLimit
	if d.Production {
		for _, mw := range middleware.ProductionSecurity(d.Metrics) {
			r.Use(mw)
		}
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", handlers.Root)
	r.Get("/api/health", handlers.Health(d.Store))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	protect := middleware.Protect(d.Auth, d.Metrics)
	authLimit := middleware.AuthRateLimit(d.Redis, d.AuthRateLimit, d.AuthRateWindow, d.Metrics)

	auth := handlers.NewAuthHandler(d.Auth)
	topics := handlers.NewTopicHandler(d.Topics)
	problems := handlers.NewProblemHandler(d.Problems)
	profile := handlers.NewProfileHandler(d.Profiles)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(authLimit).Post("/register", auth.Register)
		r.With(authLimit).Post("/login", auth.Login)
		r.With(protect).Get("/me", auth.Me)
		r.With(protect).Post("/logout", auth.Logout)
	})

	r.Route("/api/topics", func(r chi.Router) {
		r.Use(protect)
		r.Get("/", topics.List)
		r.Post("/", topics.Create)
		r.Put("/{id}", topics.Update)
		r.Delete("/{id}", topics.Delete)
	})

	r.Route("/api/problems", func(r chi.Router) {
		r.Use(protect)
		r.Get("/", problems.List)
		r.Post("/", problems.Create)
		r.Put("/{id}", problems.Update)
		r.Delete("/{id}", problems.Delete)
		r.Put("/{id}/toggle-favorite", problems.ToggleFavorite)
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(protect)
		r.Get("/me", profile.Me)
		r.Put("/me", profile.UpdateMe)
		r.Get("/stats", profile.Stats)
	})

	return r
}
