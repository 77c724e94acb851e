package ratelimit

import (
	"context"
	"time"
)

type LimiterConfig struct {
	// key 前綴
	Key      string
	Capacity int
	// tokens/秒
	RatePS int
	// 閒置 bucket 的保留時間
	IdleTTL time.Duration
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Key:      "global",
		Capacity: 100,
		RatePS:   1,
		IdleTTL:  time.Minute,
	}
}

func (l LimiterConfig) normalize() LimiterConfig {
	def := GetDefaultLimiterConfig()
	if l.Key == "" {
		l.Key = def.Key
	}
	if l.Capacity <= 0 {
		l.Capacity = def.Capacity
	}
	if l.RatePS <= 0 {
		l.RatePS = def.RatePS
	}
	if l.IdleTTL <= 0 {
		l.IdleTTL = def.IdleTTL
	}
	return l
}

// ILimiter 以 key 區分的限流器, 例如每個使用者一個 bucket
type ILimiter interface {
	Allow(ctx context.Context, key string) bool
}
