package redis_repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMemoryEventLedger(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryEventLedger(time.Hour)
	now := time.Unix(1_700_000_000, 0)
	ledger.now = func() time.Time { return now }

	seen, err := ledger.Seen(ctx, "evt_1")
	require.NoError(t, err)
	require.False(t, seen)

	require.NoError(t, ledger.Mark(ctx, "evt_1"))
	seen, err = ledger.Seen(ctx, "evt_1")
	require.NoError(t, err)
	require.True(t, seen)

	now = now.Add(2 * time.Hour)
	seen, err = ledger.Seen(ctx, "evt_1")
	require.NoError(t, err)
	require.False(t, seen)
}

func TestMemoryEventLedgerSweepsExpiredOnMark(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryEventLedger(time.Hour)
	now := time.Unix(1_700_000_000, 0)
	ledger.now = func() time.Time { return now }

	for _, id := range []string{"evt_1", "evt_2", "evt_3"} {
		require.NoError(t, ledger.Mark(ctx, id))
	}
	require.Equal(t, 3, ledger.Len())

	// 過期的 id 不需要再被查詢也會被清掉
	now = now.Add(2 * time.Hour)
	require.NoError(t, ledger.Mark(ctx, "evt_4"))
	require.Equal(t, 1, ledger.Len())

	seen, err := ledger.Seen(ctx, "evt_4")
	require.NoError(t, err)
	require.True(t, seen)
}

type EventLedgerTestSuite struct {
	suite.Suite
	client *redis.Client
	ledger *EventLedger
}

func (s *EventLedgerTestSuite) SetupSuite() {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		s.T().Skip("TEST_REDIS_ADDR not set")
	}
	client, err := GetRedisClient(context.Background(), addr)
	require.NoError(s.T(), err)
	s.client = client
	s.ledger = NewEventLedger(client, "test_webhook", time.Minute)
}

func (s *EventLedgerTestSuite) TearDownSuite() {
	if s.client != nil {
		require.NoError(s.T(), CloseAll())
	}
}

func (s *EventLedgerTestSuite) TestMarkThenSeen() {
	ctx := context.Background()
	eventID := "evt_" + uuid.NewString()

	seen, err := s.ledger.Seen(ctx, eventID)
	s.Require().NoError(err)
	s.Require().False(seen)

	s.Require().NoError(s.ledger.Mark(ctx, eventID))
	s.Require().NoError(s.ledger.Mark(ctx, eventID))

	seen, err = s.ledger.Seen(ctx, eventID)
	s.Require().NoError(err)
	s.Require().True(seen)

	ttl, err := s.client.TTL(ctx, s.ledger.key(eventID)).Result()
	s.Require().NoError(err)
	s.Require().Greater(ttl, time.Duration(0))
}

func TestEventLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(EventLedgerTestSuite))
}
