package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/metrics"
	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultStatsTTL bounds how stale stats can get if an invalidation is lost.
	DefaultStatsTTL = 10 * time.Minute
)

// StatsCache caches per-user solved stats in Redis. A nil client disables it.
// Cache failures are logged and treated as misses.
type StatsCache struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{redis: rdb, ttl: ttl}
}

// Instrument counts hits and misses on m.
func (c *StatsCache) Instrument(m *metrics.Metrics) *StatsCache {
	c.metrics = m
	return c
}

func statsKey(userID string) string {
	return CacheKeyPrefix + "stats:" + userID
}

// Get retrieves cached stats.
func (c *StatsCache) Get(ctx context.Context, userID string) (*models.Stats, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	stats, ok := c.get(ctx, userID)
	c.metrics.StatsCacheLookup(ok)
	return stats, ok
}

func (c *StatsCache) get(ctx context.Context, userID string) (*models.Stats, bool) {
	val, err := c.redis.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("stats cache read failed")
		}
		return nil, false
	}

	var stats models.Stats
	if err := json.Unmarshal(val, &stats); err != nil {
		log.Warn().Err(err).Msg("stats cache entry corrupt")
		return nil, false
	}
	return &stats, true
}

// Set stores stats with the cache TTL.
func (c *StatsCache) Set(ctx context.Context, userID string, stats *models.Stats) {
	if c == nil || c.redis == nil {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, statsKey(userID), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("stats cache write failed")
	}
}

// Invalidate drops the cached stats after a write that changes them.
func (c *StatsCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, statsKey(userID)).Err(); err != nil {
		log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
