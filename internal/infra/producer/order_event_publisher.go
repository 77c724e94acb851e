package producer

import (
	"context"
	"encoding/json"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/segmentio/kafka-go"
)

type IOrderEventPublisher interface {
	Publish(ctx context.Context, evt model.OrderEvent) error
}

type OrderEventPublisher struct {
	p Producer
}

func NewOrderEventPublisher(p Producer) *OrderEventPublisher {
	return &OrderEventPublisher{p: p}
}

// Publish 以 order id 當 key, 同一訂單的事件落在同一分區
func (o *OrderEventPublisher) Publish(ctx context.Context, evt model.OrderEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return o.p.Produce(ctx, kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
		},
	})
}

// NopPublisher 未設定 kafka 時使用
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, evt model.OrderEvent) error {
	return nil
}

var (
	_ IOrderEventPublisher = (*OrderEventPublisher)(nil)
	_ IOrderEventPublisher = NopPublisher{}
)
