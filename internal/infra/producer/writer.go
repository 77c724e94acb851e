package producer

//go:generate mockgen -source=writer.go -destination=mock/mock_writer.go -package=mock_producer

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Writer 抽出 kafka.Writer 需要的方法, 方便測試替換
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
