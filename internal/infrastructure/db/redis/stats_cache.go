package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/demanddesk/api/internal/core/ports"
)

const (
	adminStatsKey = "stats:admin"
	statsTTL      = 30 * time.Second
)

// StatsCache caches the admin dashboard aggregate in Redis for a short TTL.
// Cache failures degrade to a recompute; they are logged, never surfaced.
type StatsCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, log: log}
}

// GetAdminStats returns the cached aggregate and whether it was present.
func (c *StatsCache) GetAdminStats(ctx context.Context) (*ports.AdminStats, bool) {
	raw, err := c.client.Get(ctx, adminStatsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("stats cache read failed")
		}
		return nil, false
	}

	var stats ports.AdminStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.log.Warn().Err(err).Msg("stats cache decode failed")
		return nil, false
	}
	return &stats, true
}

// InvalidateAdminStats drops the cached aggregate. Called from the demand and
// user write paths so a cached value never outlives a completed write.
func (c *StatsCache) InvalidateAdminStats(ctx context.Context) {
	if err := c.client.Del(ctx, adminStatsKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

// SetAdminStats stores the aggregate with the cache TTL.
func (c *StatsCache) SetAdminStats(ctx context.Context, stats *ports.AdminStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, adminStatsKey, raw, statsTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache write failed")
	}
}
