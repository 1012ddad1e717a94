package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/AnshRaj112/placement-tracker-backend/internal/config"
	"github.com/AnshRaj112/placement-tracker-backend/internal/database"
	"github.com/AnshRaj112/placement-tracker-backend/internal/logger"
	"github.com/AnshRaj112/placement-tracker-backend/internal/metrics"
	"github.com/AnshRaj112/placement-tracker-backend/internal/routes"
	"github.com/AnshRaj112/placement-tracker-backend/internal/services"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store/memstore"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store/mongostore"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store/pgstore"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.IsProduction())
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.UsesInsecureSecret() {
		log.Warn().Msg("JWT_SECRET not set, signing tokens with the insecure fallback secret")
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	var rdb *redis.Client
	if cfg.RedisURI != "" {
		rdb, err = database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
	} else {
		log.Warn().Msg("REDIS_URI not set, auth rate limits are per-process and stats are not cached")
	}

	m := metrics.New()
	cache := services.NewStatsCache(rdb, services.DefaultStatsTTL).Instrument(m)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, rdb)
	if !tokens.RevocationEnabled() {
		log.Warn().Msg("token denylist disabled, logged out tokens stay valid until they expire")
	}
	auth, err := services.NewAuthService(st, st, tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise auth service")
	}

	handler := routes.NewRouter(routes.Deps{
		Auth:           auth,
		Topics:         services.NewTopicService(st, cache),
		Problems:       services.NewProblemService(st, st, cache),
		Profiles:       services.NewProfileService(st, st, st, cache),
		Store:          st,
		Redis:          rdb,
		Metrics:        m,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateWindow: cfg.AuthRateWindow,
		Production:     cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Environment).
			Str("store", cfg.StoreDriver).
			Msg("placement tracker backend running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}

// openStore connects the configured backend and prepares its schema.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		log.Info().Str("uri", database.MaskURI(cfg.MongoURI)).Msg("connecting to MongoDB")
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		s := mongostore.New(client, db)
		idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := s.EnsureIndexes(idxCtx); err != nil {
			_ = database.DisconnectMongo(client)
			return nil, err
		}
		return s, nil

	case config.DriverPostgres:
		log.Info().Str("uri", database.MaskURI(cfg.PostgresURI)).Msg("connecting to PostgreSQL")
		db, err := database.ConnectPostgres(ctx, cfg.PostgresURI)
		if err != nil {
			return nil, err
		}
		return pgstore.New(db), nil

	default:
		log.Warn().Msg("using the in-memory store, data is lost on restart")
		return memstore.New(), nil
	}
}
