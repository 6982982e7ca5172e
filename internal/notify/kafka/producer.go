package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"audit-backend/internal/notify"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Sink publishes events as JSON to a Kafka topic keyed by event ID.
type Sink struct {
	writer messageWriter
	topic  string
}

// New creates a Kafka sink for the given brokers and topic.
func New(brokers []string, topic string) (*Sink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	return &Sink{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkago.LeastBytes{},
		},
		topic: topic,
	}, nil
}

func (s *Sink) Name() string { return "kafka" }

func (s *Sink) Send(ctx context.Context, ev notify.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode kafka event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(ev.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(ev.Kind)},
			{Key: "source", Value: []byte(ev.Source)},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write topic=%s: %w", s.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (s *Sink) Close() error {
	return s.writer.Close()
}

var _ notify.Sink = (*Sink)(nil)
