package logkafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// EntryWriter is the subset of *kafka.Writer the request logger uses.
type EntryWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns an async writer; delivery errors never block a request.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
	})
}

func writeEntry(ctx context.Context, w EntryWriter, msg []byte) error {
	return w.WriteMessages(ctx, kafka.Message{
		Value: msg,
		Time:  time.Now(),
	})
}
