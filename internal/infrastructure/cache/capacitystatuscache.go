package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/logger"
)

const (
	statusKeyPrefix = "capacity:status:"
	// Jitter spreads expirations so a fleet of coaches warmed at the same
	// time does not refresh in one burst (anti-stampede).
	statusTTLJitter = 2 * time.Minute
)

// RedisCapacityStatusCache caches resolved capacity snapshots per coach.
// The snapshot is advisory only; allocation always recomputes under row
// locks, so a stale entry can never oversell a slot.
type RedisCapacityStatusCache struct {
	client  *redis.Client
	baseTTL time.Duration
	logger  logger.Interface
}

func NewRedisCapacityStatusCache(client *redis.Client, ttlMinutes int, logger logger.Interface) *RedisCapacityStatusCache {
	return &RedisCapacityStatusCache{
		client:  client,
		baseTTL: time.Duration(ttlMinutes) * time.Minute,
		logger:  logger,
	}
}

func (c *RedisCapacityStatusCache) key(coachID uint) string {
	return fmt.Sprintf("%s%d", statusKeyPrefix, coachID)
}

// Get retrieves a cached capacity snapshot. A cache miss returns (nil, nil).
func (c *RedisCapacityStatusCache) Get(ctx context.Context, coachID uint) (*capacity.CapacityStatus, error) {
	data, err := c.client.Get(ctx, c.key(coachID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get capacity status from cache: %w", err)
	}

	var status capacity.CapacityStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to decode cached capacity status: %w", err)
	}

	return &status, nil
}

// Set stores a capacity snapshot with a jittered TTL.
func (c *RedisCapacityStatusCache) Set(ctx context.Context, coachID uint, status capacity.CapacityStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode capacity status: %w", err)
	}

	if err := c.client.Set(ctx, c.key(coachID), data, c.ttlWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set capacity status in cache: %w", err)
	}

	c.logger.Debugw("capacity status cached",
		"coach_id", coachID,
		"effective_limit", status.EffectiveLimit,
		"active_count", status.ActiveCount,
	)

	return nil
}

// Invalidate removes the cached snapshot after any capacity-mutating operation.
func (c *RedisCapacityStatusCache) Invalidate(ctx context.Context, coachID uint) error {
	if err := c.client.Del(ctx, c.key(coachID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate capacity status cache: %w", err)
	}

	c.logger.Debugw("capacity status cache invalidated",
		"coach_id", coachID,
	)

	return nil
}

func (c *RedisCapacityStatusCache) ttlWithJitter() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(statusTTLJitter)))
	return c.baseTTL + jitter
}
