package store

import (
	"context"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/data/redisStore"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

const summaryKeyPrefix = "summary:"

type RedisSummaryCache struct {
	store  *redisStore.Store
	ttl    time.Duration
	logger *logger_i.Logger
}

// GetRedisSummaryCache returns nil when Redis is unreachable.
func GetRedisSummaryCache(ctx context.Context, opts redisStore.Options, ttl time.Duration) *RedisSummaryCache {
	rs := redisStore.GetRedisStore(ctx, opts, config.RedisSummaryCache)
	if rs == nil {
		return nil
	}
	return NewRedisSummaryCache(rs, ttl)
}

func NewRedisSummaryCache(rs *redisStore.Store, ttl time.Duration) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = config.RedisSummaryCacheTTL
	}
	return &RedisSummaryCache{
		store:  rs,
		ttl:    ttl,
		logger: logger_i.NewLogger("summary_cache"),
	}
}

// Get treats every Redis failure as a miss; the summary is then regenerated.
func (c *RedisSummaryCache) Get(ctx context.Context, key string) (summaryModel.Result, bool) {
	var result summaryModel.Result
	found, err := c.store.GetJSON(ctx, summaryKeyPrefix+key, &result)
	if err != nil {
		c.logger.FromContext(ctx).Warn("summary cache read failed", "error", err)
		return summaryModel.Result{}, false
	}
	return result, found
}

func (c *RedisSummaryCache) Set(ctx context.Context, key string, result summaryModel.Result) error {
	result.Cached = false
	return c.store.SetJSON(ctx, summaryKeyPrefix+key, result, c.ttl)
}
