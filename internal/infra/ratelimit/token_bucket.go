package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

/*
單機版 token bucket
取用時才依經過時間補 token, 不需要背景 goroutine
*/
type TokenBucket struct {
	LimiterConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	lastGC  time.Time
}

func NewTokenBucket(config *LimiterConfig) *TokenBucket {
	cfg := GetDefaultLimiterConfig()
	if config != nil {
		cfg = config.normalize()
	}
	return &TokenBucket{
		LimiterConfig: cfg,
		buckets:       make(map[string]*bucket),
		now:           time.Now,
	}
}

func (t *TokenBucket) Allow(ctx context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.gc(now)

	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(t.Capacity), lastRefill: now}
		t.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(float64(t.Capacity), b.tokens+elapsed*float64(t.RatePS))
		b.lastRefill = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// 清掉閒置過久的 bucket
func (t *TokenBucket) gc(now time.Time) {
	if now.Sub(t.lastGC) < t.IdleTTL {
		return
	}
	for k, b := range t.buckets {
		if now.Sub(b.lastRefill) >= t.IdleTTL {
			delete(t.buckets, k)
		}
	}
	t.lastGC = now
}
