package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type stubProducer struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (s *stubProducer) Produce(ctx context.Context, msgs ...kafka.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msgs...)
	return nil
}

func (s *stubProducer) Close() error {
	s.closed = true
	return nil
}

func TestLoggerWritesToSink(t *testing.T) {
	var buf bytes.Buffer
	l := New("foodorder", WithLevel("debug"), WithSink(&buf))

	l.Info().Str("order_id", "o1").Msg("order confirmed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "foodorder", line["service"])
	require.Equal(t, "o1", line["order_id"])
	require.Equal(t, "order confirmed", line["message"])
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New("foodorder", WithLevel("warn"), WithSink(&buf))

	l.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	l = New("foodorder", WithLevel("not-a-level"), WithSink(&buf))
	l.Info().Msg("kept")
	require.NotZero(t, buf.Len())
}

func TestKafkaLogWriter(t *testing.T) {
	p := &stubProducer{}
	w := NewKafkaLogWriter(p)

	line := []byte(`{"level":"info","message":"hello"}`)
	n, err := w.Write(line)
	require.NoError(t, err)
	require.Equal(t, len(line), n)

	// 寫入後修改原 buffer 不影響已送出的訊息
	line[0] = 'X'
	_, err = w.Write([]byte(`{"level":"info","message":"second"}`))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.True(t, p.closed)

	require.Len(t, p.msgs, 2)
	require.Equal(t, byte('{'), p.msgs[0].Value[0])
	require.NotEqual(t, p.msgs[0].Key, p.msgs[1].Key)

	_, err = w.Write([]byte("late"))
	require.ErrorIs(t, err, ErrLogWriterClosed)
	require.NoError(t, w.Close())
}

func TestKafkaLogWriterProduceErrorDoesNotFailWrite(t *testing.T) {
	p := &stubProducer{err: errors.New("broker down")}
	w := NewKafkaLogWriter(p)

	_, err := w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Empty(t, p.msgs)
}

// blockingProducer 模擬 broker 卡住
type blockingProducer struct {
	stubProducer
	release chan struct{}
}

func (b *blockingProducer) Produce(ctx context.Context, msgs ...kafka.Message) error {
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return b.stubProducer.Produce(ctx, msgs...)
}

func TestKafkaLogWriterDoesNotBlockOnSlowBroker(t *testing.T) {
	p := &blockingProducer{release: make(chan struct{})}
	w := newKafkaLogWriter(p, 8)

	const lines = 50
	start := time.Now()
	for i := 0; i < lines; i++ {
		_, err := w.Write([]byte(`{"message":"checkout"}`))
		require.NoError(t, err)
	}
	require.Less(t, time.Since(start), 100*time.Millisecond)
	require.NotZero(t, w.Dropped())

	close(p.release)
	require.NoError(t, w.Close())

	p.mu.Lock()
	delivered := len(p.msgs)
	p.mu.Unlock()
	require.Equal(t, uint64(lines), uint64(delivered)+w.Dropped())
}
