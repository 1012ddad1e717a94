package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/config"
	"github.com/AnshRaj112/placement-tracker-backend/internal/metrics"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/clientip"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:auth:"

	MsgTooManyAuthRequests = "Too many requests, please try again later."
)

// AuthRateLimit limits register/login attempts per client IP with a fixed
// window counter in Redis. Without Redis, or while Redis is failing, an
// in-process token bucket with the same average rate is used instead.
func AuthRateLimit(rdb *redis.Client, limit int, window time.Duration, m *metrics.Metrics) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = config.DefaultAuthRateLimit
	}
	if window <= 0 {
		window = config.DefaultAuthRateWindow
	}
	fallback := newIPLimiters(rate.Every(window/time.Duration(limit)), limit)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientip.RealClientIP(r)

			allowed, remaining, err := redisWindow(r.Context(), rdb, RateLimitKeyPrefix+ip, limit, window)
			if err != nil {
				if rdb != nil {
					log.Warn().Err(err).Msg("auth rate limit falling back to in-process limiter")
				}
				allowed, remaining = fallback.Allow(ip), -1
			}

			if !allowed {
				m.RateLimited("auth")
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				utils.WriteMessage(w, http.StatusTooManyRequests, MsgTooManyAuthRequests)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			if remaining >= 0 {
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			}
			next.ServeHTTP(w, r)
		})
	}
}

var errNoRedis = errors.New("redis not configured")

// redisWindow increments the caller's counter, starting the window on the
// first hit, and reports whether the request is within the limit.
func redisWindow(ctx context.Context, rdb *redis.Client, key string, limit int, window time.Duration) (bool, int, error) {
	if rdb == nil {
		return false, 0, errNoRedis
	}

	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if n == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
	}

	count := int(n)
	if count > limit {
		return false, 0, nil
	}
	return true, limit - count, nil
}
