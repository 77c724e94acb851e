package producer

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// Config 生產者設定, 一個 producer 只寫固定 topic
type Config struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	// -1 等待所有副本確認
	RequiredAcks  int
	RetryAttempts int

	// 預設以 key hash 分區, 同一訂單的事件保持順序
	Balancer kafka.Balancer
}

func (c *Config) GetBalancer() kafka.Balancer {
	if c.Balancer != nil {
		return c.Balancer
	}
	return &kafka.Hash{}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return NewKafkaError("Validate", c.Topic, ErrInvalidateParameter)
	}
	if c.Topic == "" {
		return NewKafkaError("Validate", c.Topic, ErrInvalidateParameter)
	}
	return nil
}

func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:       brokers,
		Topic:         topic,
		BatchSize:     100,
		BatchTimeout:  10 * time.Millisecond,
		WriteTimeout:  5 * time.Second,
		RequiredAcks:  -1,
		RetryAttempts: 3,
	}
}
