package redis_repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// IEventLedger 記錄已處理過的付款事件 id
// 只是捷徑, 訂單狀態的條件更新才是最終依據
type IEventLedger interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type EventLedger struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewEventLedger(client *redis.Client, prefix string, ttl time.Duration) *EventLedger {
	return &EventLedger{client: client, prefix: prefix, ttl: ttl}
}

func (l *EventLedger) key(eventID string) string {
	return fmt.Sprintf("%s:event:%s", l.prefix, eventID)
}

func (l *EventLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(eventID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *EventLedger) Mark(ctx context.Context, eventID string) error {
	return l.client.SetNX(ctx, l.key(eventID), time.Now().Unix(), l.ttl).Err()
}

// MemoryEventLedger 單機用, 未設定 redis 時使用
type MemoryEventLedger struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
	lastGC time.Time
}

func NewMemoryEventLedger(ttl time.Duration) *MemoryEventLedger {
	return &MemoryEventLedger{seen: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

// gc 每隔一個 ttl 清掉過期的事件 id, 呼叫端需持有鎖
func (m *MemoryEventLedger) gc(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastGC) < m.ttl {
		return
	}
	for id, markedAt := range m.seen {
		if now.Sub(markedAt) > m.ttl {
			delete(m.seen, id)
		}
	}
	m.lastGC = now
}

func (m *MemoryEventLedger) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

func (m *MemoryEventLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	markedAt, ok := m.seen[eventID]
	if !ok {
		return false, nil
	}
	if m.ttl > 0 && m.now().Sub(markedAt) > m.ttl {
		delete(m.seen, eventID)
		return false, nil
	}
	return true, nil
}

func (m *MemoryEventLedger) Mark(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.gc(now)
	if _, ok := m.seen[eventID]; !ok {
		m.seen[eventID] = now
	}
	return nil
}

var (
	_ IEventLedger = (*EventLedger)(nil)
	_ IEventLedger = (*MemoryEventLedger)(nil)
)
