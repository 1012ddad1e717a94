package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(mapLookup(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, InsecureJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.UsesInsecureSecret())
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, DefaultAuthRateLimit, cfg.AuthRateLimit)
	assert.Equal(t, 15*time.Minute, cfg.AuthRateWindow)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(mapLookup(map[string]string{
		"ENV":             "Production",
		"PORT":            "5000",
		"STORE_DRIVER":    "postgres",
		"POSTGRES_URI":    "postgres://db/prod",
		"JWT_SECRET":      "s3cr3t",
		"JWT_EXPIRES_IN":  "1h",
		"ALLOWED_ORIGINS": "https://a.example, https://b.example,https://A.example",
		"AUTH_RATE_LIMIT": "5",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := load(mapLookup(map[string]string{"JWT_EXPIRES_IN": "30 days"}))
	assert.ErrorContains(t, err, "JWT_EXPIRES_IN")
}

func TestValidate_ProductionRejectsFallbackSecret(t *testing.T) {
	base := map[string]string{
		"ENV":          "production",
		"PORT":         "8080",
		"MONGODB_URI":  "mongodb://db/prod",
		"FRONTEND_URL": "https://app.example",
	}

	t.Run("missing secret", func(t *testing.T) {
		cfg, err := load(mapLookup(base))
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("explicit fallback secret", func(t *testing.T) {
		env := map[string]string{"JWT_SECRET": InsecureJWTSecret}
		for k, v := range base {
			env[k] = v
		}
		cfg, err := load(mapLookup(env))
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})
}

func TestValidate_ProductionRequiresExplicitValues(t *testing.T) {
	cfg, err := load(mapLookup(map[string]string{
		"ENV":        "production",
		"JWT_SECRET": "real-secret",
	}))
	require.NoError(t, err)

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.ErrorContains(t, verr, "PORT")
	assert.ErrorContains(t, verr, "MONGODB_URI")
	assert.ErrorContains(t, verr, "FRONTEND_URL")
}

func TestValidate_StoreDriver(t *testing.T) {
	cfg, err := load(mapLookup(map[string]string{"STORE_DRIVER": "sqlite"}))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "unknown STORE_DRIVER")

	cfg, err = load(mapLookup(map[string]string{"STORE_DRIVER": "memory"}))
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	cfg, err = load(mapLookup(map[string]string{
		"ENV":          "production",
		"STORE_DRIVER": "memory",
		"PORT":         "80",
		"JWT_SECRET":   "x",
		"FRONTEND_URL": "https://app.example",
	}))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "memory")
}
