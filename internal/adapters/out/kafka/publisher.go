// Package kafka publishes outbox messages to Kafka topics.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/outbox"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const (
	eventTypeHeader = "event-type"
	messageIDHeader = "message-id"
)

// Writer is the part of *kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ ports.MessagePublisher = (*Publisher)(nil)

// Publisher sends outbox messages to the topic mapped to their event type.
// Messages are keyed by aggregate id so one order's changes stay in one
// partition and keep their order.
type Publisher struct {
	writer Writer
	topics map[string]string
}

// NewWriter returns a synchronous writer for brokers. A nil error from
// WriteMessages means every partition leader acknowledged the batch.
func NewWriter(brokers string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
	}
}

// NewPublisher takes a map of event type to topic name.
func NewPublisher(writer Writer, topics map[string]string) (*Publisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	if len(topics) == 0 {
		return nil, errs.NewValueIsRequiredError("topics")
	}
	for eventType, topic := range topics {
		if strings.TrimSpace(topic) == "" {
			return nil, errs.NewValueIsInvalidError("topic for " + eventType)
		}
	}

	return &Publisher{writer: writer, topics: topics}, nil
}

// Publish writes one message and waits for the broker acknowledgement.
func (p *Publisher) Publish(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	topic, ok := p.topics[message.EventType()]
	if !ok {
		return fmt.Errorf("no topic configured for event type %q", message.EventType())
	}

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(message.AggregateID().String()),
		Value: message.Payload(),
		Time:  message.CreatedAt(),
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(message.EventType())},
			{Key: messageIDHeader, Value: []byte(message.ID().String())},
		},
	})
	if err != nil {
		var writeErrs kafka.WriteErrors
		if errors.As(err, &writeErrs) && writeErrs.Count() > 0 {
			err = writeErrs[0]
		}
		return fmt.Errorf("publish %s to %s: %w", message.ID(), topic, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
