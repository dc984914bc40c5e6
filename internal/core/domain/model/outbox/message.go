// Package outbox models notifications that are stored together with the
// change that produced them and published to the message broker afterwards.
package outbox

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned by Validate on a zero-value Message.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Message is one pending notification. AggregateID is used as the broker
// partition key so all messages of an order keep their relative order.
type Message struct {
	id          kernel.UUID
	eventType   string
	aggregateID kernel.UUID
	payload     []byte
	createdAt   time.Time

	attempts    int
	publishedAt *time.Time
	lastError   string

	isConstructed bool
}

// NewMessage creates an unpublished message.
func NewMessage(eventType string, aggregateID kernel.UUID, payload []byte, createdAt time.Time) (*Message, error) {
	var typeErr, payloadErr, createdErr error
	if strings.TrimSpace(eventType) == "" {
		typeErr = errs.NewValueIsRequiredError("eventType")
	}
	if len(payload) == 0 {
		payloadErr = errs.NewValueIsRequiredError("payload")
	}
	if createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(typeErr, aggregateID.Validate(), payloadErr, createdErr); err != nil {
		return nil, err
	}

	return &Message{
		id:            kernel.NewUUID(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		payload:       payload,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreParams carries the persisted state of a message.
type RestoreParams struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	Payload     []byte
	CreatedAt   time.Time
	Attempts    int
	PublishedAt *time.Time
	LastError   string
}

// RestoreMessage rebuilds a message from storage.
func RestoreMessage(p RestoreParams) (*Message, error) {
	m, err := NewMessage(p.EventType, p.AggregateID, p.Payload, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = p.ID.Validate(); err != nil {
		return nil, err
	}

	m.id = p.ID
	m.attempts = p.Attempts
	m.publishedAt = p.PublishedAt
	m.lastError = p.LastError
	return m, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID          { return m.id }
func (m *Message) EventType() string        { return m.eventType }
func (m *Message) AggregateID() kernel.UUID { return m.aggregateID }
func (m *Message) Payload() []byte          { return m.payload }
func (m *Message) CreatedAt() time.Time     { return m.createdAt }
func (m *Message) Attempts() int            { return m.attempts }
func (m *Message) PublishedAt() *time.Time  { return m.publishedAt }
func (m *Message) LastError() string        { return m.lastError }

// IsPublished reports whether the broker acknowledged the message.
func (m *Message) IsPublished() bool {
	return m.publishedAt != nil
}

// MarkPublished records a successful delivery.
func (m *Message) MarkPublished(at time.Time) {
	m.attempts++
	m.publishedAt = &at
	m.lastError = ""
}

// MarkFailed records a failed delivery attempt.
func (m *Message) MarkFailed(cause error) {
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
}
