package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Consumer wraps a kafka-go group reader for downstream indexers.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10 << 20,
		}),
	}
}

// Next blocks until a message arrives or ctx is cancelled.
func (c *Consumer) Next(ctx context.Context) (kafka.Message, error) {
	return c.reader.ReadMessage(ctx)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
