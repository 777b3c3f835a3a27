package service

import (
	"context"
	"time"

	"github.com/content-platform-api/internal/cache"
	"github.com/content-platform-api/internal/metrics"
	"github.com/rs/zerolog"
)

// pointCache implements cache-aside reads of single entities. Cache
// failures are logged and counted; they never fail the request.
type pointCache[T any] struct {
	store   cache.Store
	prefix  string
	ttl     time.Duration
	metrics metrics.Recorder
	log     zerolog.Logger
}

// get returns the cached entity for id or loads it and populates the
// cache. Load errors, including not-found, are returned as-is and
// nothing is cached for them.
func (c *pointCache[T]) get(ctx context.Context, id string, load func(ctx context.Context) (*T, error)) (*T, error) {
	key := cache.Key(c.prefix, id)

	var cached T
	found, err := c.store.Get(ctx, key, &cached)
	if err != nil {
		c.metrics.RecordCacheError(c.prefix, "get")
		c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, reading from database")
	}
	if found {
		c.metrics.RecordCacheHit(c.prefix)
		c.log.Info().Str("key", key).Msg("Served from cache")
		return &cached, nil
	}

	c.metrics.RecordCacheMiss(c.prefix)
	entity, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, key, entity, c.ttl); err != nil {
		c.metrics.RecordCacheError(c.prefix, "set")
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	} else {
		c.log.Info().Str("key", key).Dur("ttl", c.ttl).Msg("Loaded from database and cached")
	}
	return entity, nil
}

// invalidate drops the cached entity for id. Failure leaves a stale entry
// until its TTL runs out.
func (c *pointCache[T]) invalidate(ctx context.Context, id string) {
	key := cache.Key(c.prefix, id)
	if err := c.store.Delete(ctx, key); err != nil {
		c.metrics.RecordCacheError(c.prefix, "delete")
		c.log.Error().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}
