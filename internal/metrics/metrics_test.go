package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/problems/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/problems/"+id, nil))
	}

	body := scrape(t, m)
	assert.Contains(t, body, `placement_http_requests_total{method="GET",route="/api/problems/{id}",status="404"} 3`)
	assert.NotContains(t, body, `/api/problems/a`)
}

func TestCounters(t *testing.T) {
	m := New()
	m.AuthFailure("expired")
	m.AuthFailure("expired")
	m.RateLimited("auth")
	m.StatsCacheLookup(true)
	m.StatsCacheLookup(false)

	body := scrape(t, m)
	assert.Contains(t, body, `placement_auth_failures_total{reason="expired"} 2`)
	assert.Contains(t, body, `placement_rate_limited_total{scope="auth"} 1`)
	assert.Contains(t, body, `placement_stats_cache_total{result="hit"} 1`)
	assert.Contains(t, body, `placement_stats_cache_total{result="miss"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AuthFailure("invalid")
		m.RateLimited("auth")
		m.StatsCacheLookup(true)
	})
}
