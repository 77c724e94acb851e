package logger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	logBufferSize = 1024
	logBatchSize  = 100
)

var ErrLogWriterClosed = errors.New("kafka log writer is closed")

// producer 的最小介面, 避免與 infra/producer 互相 import
type messageProducer interface {
	Produce(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

/*
KafkaLogWriter 實作 io.Writer, 把 zerolog 每一行寫入 kafka
Write 只放進 buffer, 由背景 goroutine 批次送出, buffer 滿時丟棄並計數
*/
type KafkaLogWriter struct {
	p       messageProducer
	logID   atomic.Uint64
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	msgs    chan kafka.Message
	dropped atomic.Uint64
	done    chan struct{}
}

func NewKafkaLogWriter(p messageProducer) *KafkaLogWriter {
	return newKafkaLogWriter(p, logBufferSize)
}

func newKafkaLogWriter(p messageProducer, bufferSize int) *KafkaLogWriter {
	kw := &KafkaLogWriter{
		p:       p,
		timeout: 5 * time.Second,
		msgs:    make(chan kafka.Message, bufferSize),
		done:    make(chan struct{}),
	}
	go kw.run()
	return kw
}

func (kw *KafkaLogWriter) Write(p []byte) (n int, err error) {
	if kw == nil || kw.p == nil {
		return 0, fmt.Errorf("kafka log writer is not init")
	}

	// key 用流水號, 讓 hash balancer 平均分到各分區
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, kw.logID.Add(1))

	// zerolog 會重用 buffer, 必須複製
	value := make([]byte, len(p))
	copy(value, p)

	kw.mu.RLock()
	defer kw.mu.RUnlock()
	if kw.closed {
		return 0, ErrLogWriterClosed
	}
	select {
	case kw.msgs <- kafka.Message{Key: key, Value: value}:
	default:
		kw.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped buffer 滿時被丟棄的行數
func (kw *KafkaLogWriter) Dropped() uint64 {
	return kw.dropped.Load()
}

func (kw *KafkaLogWriter) run() {
	defer close(kw.done)

	batch := make([]kafka.Message, 0, logBatchSize)
	for msg := range kw.msgs {
		batch = append(batch[:0], msg)
	drain:
		for len(batch) < logBatchSize {
			select {
			case next, ok := <-kw.msgs:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}
		kw.flush(batch)
	}
}

func (kw *KafkaLogWriter) flush(batch []kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), kw.timeout)
	defer cancel()
	if err := kw.p.Produce(ctx, batch...); err != nil {
		// 不能寫回 logger 本身
		fmt.Fprintf(os.Stderr, "kafka log writer: drop %d lines: %v\n", len(batch), err)
	}
}

// Close 送完 buffer 內剩餘的 log 後關閉 producer
func (kw *KafkaLogWriter) Close() error {
	kw.mu.Lock()
	if kw.closed {
		kw.mu.Unlock()
		return nil
	}
	kw.closed = true
	close(kw.msgs)
	kw.mu.Unlock()

	<-kw.done
	return kw.p.Close()
}
