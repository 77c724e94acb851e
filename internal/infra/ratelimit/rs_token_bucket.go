package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisClient 介面定義
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

const tokenBucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	-- key 不存在時以滿容量初始化
	if currentTokens == nil then
		currentTokens = capacity
		lastRefill = now
	end

	local elapsedSeconds = math.max(0, now - lastRefill) / 1000
	currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)

	local allowed = 0
	if currentTokens >= 1 then
		currentTokens = currentTokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', currentTokens, 'last_refill', now)
	redis.call('PEXPIRE', key, ttl)
	return allowed
`

// RsBucketToken 多個實例共用的 token bucket, 狀態存在 redis
type RsBucketToken struct {
	LimiterConfig
	client RedisClient
}

func NewRsBucketToken(client RedisClient, config *LimiterConfig) *RsBucketToken {
	cfg := GetDefaultLimiterConfig()
	if config != nil {
		cfg = config.normalize()
	}
	return &RsBucketToken{
		LimiterConfig: cfg,
		client:        client,
	}
}

// Allow redis 失敗時放行, 限流不應擋住結帳
func (r *RsBucketToken) Allow(ctx context.Context, key string) bool {
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{r.Key + ":" + key},
		r.Capacity,
		r.RatePS,
		time.Now().UnixMilli(),
		r.IdleTTL.Milliseconds(),
	).Int64()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("limiter_key", key).Msg("redis rate limiter unavailable")
		return true
	}
	return result == 1
}

var (
	_ ILimiter = (*TokenBucket)(nil)
	_ ILimiter = (*RsBucketToken)(nil)
)
