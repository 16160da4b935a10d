package poster

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "poster:"

// CachedLookup keeps successful lookups in Redis. Misses and failures are not
// cached, so a title is retried on the next party that uses it.
type CachedLookup struct {
	next        Lookup
	redisClient *redis.Client
	ttl         time.Duration
	logger      *slog.Logger
}

func NewCachedLookup(next Lookup, redisClient *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedLookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedLookup{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

func (c *CachedLookup) Lookup(ctx context.Context, title string) (string, error) {
	key := cacheKey(title)

	val, err := c.redisClient.Get(ctx, key).Result()
	switch {
	case err == nil && val != "":
		return val, nil
	case err != nil && !errors.Is(err, redis.Nil):
		c.logger.Error("error whilst reading poster cache", "title", title, "error", err)
	}

	url, err := c.next.Lookup(ctx, title)
	if err != nil {
		return "", err
	}

	if err := c.redisClient.Set(ctx, key, url, c.ttl).Err(); err != nil {
		c.logger.Error("error whilst writing poster cache", "title", title, "error", err)
	}
	return url, nil
}

func cacheKey(title string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(title))
}
