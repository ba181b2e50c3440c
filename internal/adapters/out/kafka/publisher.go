// Package kafka publishes order routing events for downstream consumers.
// Publishing is fire-and-forget: callers log failures but never let them
// affect order state.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrDisabled is returned when publishing is attempted with no brokers
// configured.
var ErrDisabled = errors.New("kafka disabled")

// messageWriter is the subset of kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// EventPublisher implements ports.EventPublisher on top of segmentio/kafka-go.
// A single writer serves every topic; the topic travels on each message.
type EventPublisher struct {
	writer messageWriter
}

// NewEventPublisher creates a publisher for the given comma-separated broker
// list. An empty list yields a disabled publisher whose Publish always
// returns ErrDisabled.
func NewEventPublisher(brokersCSV string) *EventPublisher {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	if len(brokers) == 0 {
		return &EventPublisher{}
	}

	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish marshals the event as JSON and writes it to the topic.
func (p *EventPublisher) Publish(ctx context.Context, topic string, event any) error {
	if p.writer == nil {
		return ErrDisabled
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: data,
		Time:  time.Now().UTC(),
	})
}

// Close releases the underlying writer's resources.
func (p *EventPublisher) Close() error {
	if closer, ok := p.writer.(*kafka.Writer); ok {
		return closer.Close()
	}
	return nil
}
