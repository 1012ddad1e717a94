package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// InsecureJWTSecret is the signing secret used when JWT_SECRET is unset.
// It is only accepted outside production.
const InsecureJWTSecret = "secret_fallback"

// Auth rate limit defaults, used when AUTH_RATE_LIMIT / AUTH_RATE_WINDOW are unset.
const (
	DefaultAuthRateLimit  = 20
	DefaultAuthRateWindow = 15 * time.Minute
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Environment    string // ENV: production, development, test
	Port           string
	StoreDriver    string
	MongoURI       string
	MongoDatabase  string
	PostgresURI    string
	RedisURI       string // optional; enables logout denylist, shared rate limiting and stats cache
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	RequestTimeout time.Duration
	LogLevel       string
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// explicit records which keys were set in the environment rather than defaulted.
	explicit map[string]bool
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (*Config, error) {
	env := newEnv(lookup)

	cfg := &Config{
		Environment:   strings.ToLower(strings.TrimSpace(env.get("ENV", "development"))),
		Port:          env.get("PORT", "8080"),
		StoreDriver:   strings.ToLower(strings.TrimSpace(env.get("STORE_DRIVER", DriverMongo))),
		MongoURI:      env.get("MONGODB_URI", env.get("MONGO_URI", "mongodb://localhost:27017/placement_tracker")),
		MongoDatabase: env.get("MONGODB_DATABASE", ""),
		PostgresURI:   env.get("POSTGRES_URI", "postgres://localhost:5432/placement_tracker?sslmode=disable"),
		RedisURI:      env.get("REDIS_URI", ""),
		JWTSecret:     env.get("JWT_SECRET", InsecureJWTSecret),
		LogLevel:      strings.ToLower(env.get("LOG_LEVEL", "info")),
		explicit:      env.seen,
	}

	var err error
	if cfg.TokenTTL, err = env.duration("JWT_EXPIRES_IN", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = env.duration("REQUEST_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.AuthRateWindow, err = env.duration("AUTH_RATE_WINDOW", DefaultAuthRateWindow); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimit, err = env.int("AUTH_RATE_LIMIT", DefaultAuthRateLimit); err != nil {
		return nil, err
	}

	cfg.AllowedOrigins = parseOrigins(env.get("ALLOWED_ORIGINS", ""))
	if len(cfg.AllowedOrigins) == 0 {
		if u := strings.TrimSpace(env.get("FRONTEND_URL", "")); u != "" {
			cfg.AllowedOrigins = []string{u}
		}
	}
	if len(cfg.AllowedOrigins) == 0 && !cfg.IsProduction() {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach a running server.
// Outside production only structural problems are errors; in production every
// required value must be set explicitly and the insecure JWT fallback is refused.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverMongo, DriverPostgres:
	case DriverMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("STORE_DRIVER=memory is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.AuthRateLimit <= 0 || c.AuthRateWindow <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT and AUTH_RATE_WINDOW must be positive"))
	}

	if c.IsProduction() {
		if !c.explicit["JWT_SECRET"] || c.JWTSecret == "" || c.JWTSecret == InsecureJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET must be set to a non-default value in production"))
		}
		if !c.explicit["PORT"] {
			errs = append(errs, errors.New("PORT must be set in production"))
		}
		if len(c.AllowedOrigins) == 0 {
			errs = append(errs, errors.New("FRONTEND_URL or ALLOWED_ORIGINS must be set in production"))
		}
		switch c.StoreDriver {
		case DriverMongo:
			if !c.explicit["MONGODB_URI"] && !c.explicit["MONGO_URI"] {
				errs = append(errs, errors.New("MONGODB_URI must be set in production"))
			}
		case DriverPostgres:
			if !c.explicit["POSTGRES_URI"] {
				errs = append(errs, errors.New("POSTGRES_URI must be set in production"))
			}
		}
	}

	return errors.Join(errs...)
}

// UsesInsecureSecret reports whether tokens are signed with the built-in fallback.
func (c *Config) UsesInsecureSecret() bool {
	return c.JWTSecret == InsecureJWTSecret
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !containsOrigin(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

type envReader struct {
	lookup func(string) (string, bool)
	seen   map[string]bool
}

func newEnv(lookup func(string) (string, bool)) *envReader {
	return &envReader{lookup: lookup, seen: make(map[string]bool)}
}

func (e *envReader) get(key, defaultValue string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		e.seen[key] = true
		return value
	}
	return defaultValue
}

func (e *envReader) duration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := e.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func (e *envReader) int(key string, defaultValue int) (int, error) {
	raw := e.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
