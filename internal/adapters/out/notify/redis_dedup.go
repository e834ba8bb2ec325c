package notify

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultDedupTTL = 10 * time.Minute

type RedisDeduper struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisDeduper(rdb redis.Cmdable, ttl time.Duration) *RedisDeduper {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &RedisDeduper{rdb: rdb, ttl: ttl}
}

func (r *RedisDeduper) Claim(ctx context.Context, key string) (bool, error) {
	return r.rdb.SetNX(ctx, key, "1", r.ttl).Result()
}
