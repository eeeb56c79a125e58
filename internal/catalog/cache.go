package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "catalog:popular"

type cachedClient struct {
	next   Client
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient caches upstream responses in Redis. It returns next unchanged when
// there is no Redis client or the TTL is zero. Cache errors degrade to upstream calls.
func NewCachedClient(next Client, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) Client {
	if rdb == nil || ttl <= 0 {
		return next
	}
	return &cachedClient{next: next, redis: rdb, ttl: ttl, logger: logger}
}

func (c *cachedClient) PopularMovies(ctx context.Context, page int, language string) (json.RawMessage, error) {
	key := cacheKey(page, language)

	cached, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return json.RawMessage(cached), nil
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	body, err := c.next.PopularMovies(ctx, page, language)
	if err != nil {
		return nil, err
	}

	if err := c.redis.Set(ctx, key, []byte(body), c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return body, nil
}

func cacheKey(page int, language string) string {
	return fmt.Sprintf("%s:%s:%d", cacheKeyPrefix, language, page)
}
