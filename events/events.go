// Package events publishes domain lifecycle events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	OrderCreated             = "order.created"
	OrderStatusChanged       = "order.status_changed"
	OrderCancelled           = "order.cancelled"
	OrderPaid                = "order.paid"
	ReservationCreated       = "reservation.created"
	ReservationStatusChanged = "reservation.status_changed"
	ReservationCancelled     = "reservation.cancelled"
	ReviewCreated            = "review.created"
	ReviewUpdated            = "review.updated"
	ReviewDeleted            = "review.deleted"
)

type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	Number     string    `json:"number,omitempty"`
	Restaurant string    `json:"restaurant_id"`
	Customer   string    `json:"customer_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// Publish keys messages by restaurant so one restaurant's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Restaurant),
		Value: payload,
		Time:  event.Timestamp,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

// LogPublisher records events in the application log when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	logrus.WithFields(logrus.Fields{
		"event":      event.Type,
		"id":         event.ID,
		"restaurant": event.Restaurant,
		"status":     event.Status,
	}).Debug("domain event")
	return nil
}
