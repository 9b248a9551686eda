// internal/jobdata/cache.go
package jobdata

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"jobswipe-api/internal/common/database"
	"jobswipe-api/internal/common/logger"
	"jobswipe-api/internal/common/metrics"
)

const suggestionKeyPrefix = "jobswipe:suggestions:"

// CachedStore is a read-through cache in front of a Store. Only location
// suggestion lookups are cached; filtered searches go straight through.
// The cache is best-effort: any Redis failure falls back to the backing
// store and is logged, never surfaced.
type CachedStore struct {
	store  Store
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(store Store, redis *database.RedisClient, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		store:  store,
		redis:  redis,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "jobdata.cache"}),
	}
}

func (c *CachedStore) LocationSuggestions(ctx context.Context, location string) (*LocationSuggestions, error) {
	key := suggestionKeyPrefix + strings.ToLower(strings.TrimSpace(location))

	if cached, err := c.redis.Get(ctx, key); err == nil {
		var suggestions LocationSuggestions
		if err := json.Unmarshal([]byte(cached), &suggestions); err == nil {
			metrics.SuggestionCacheOps.WithLabelValues("hit").Inc()
			return &suggestions, nil
		}
		// Corrupt entry: drop it and fall through.
		_ = c.redis.Del(ctx, key)
	}
	metrics.SuggestionCacheOps.WithLabelValues("miss").Inc()

	suggestions, err := c.store.LocationSuggestions(ctx, location)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(suggestions); err == nil {
		if err := c.redis.Set(ctx, key, payload, c.ttl); err != nil {
			metrics.SuggestionCacheOps.WithLabelValues("store_error").Inc()
			c.logger.Warn("suggestion cache write failed", map[string]interface{}{
				"location": location,
				"error":    err.Error(),
			})
		}
	}

	return suggestions, nil
}

func (c *CachedStore) SearchJobs(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	return c.store.SearchJobs(ctx, q)
}
