package commands

import (
	"context"
	"time"

	"logistics/internal/core/ports"
)

// PublishOutboxCommandHandler relays pending outbox messages to the broker.
// Rows are locked while the batch is published, so several relays can run
// side by side without sending a message twice. A failed publish is recorded
// on the message and retried by a later run.
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
	clock      func() time.Time
}

func NewPublishOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.MessagePublisher,
) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// PublishOutboxResult counts the outcome of one relay run.
type PublishOutboxResult struct {
	Published int
	Failed    int

	// LastError is the most recent publish failure of the run, if any.
	LastError error
}

// Handle publishes one batch. Publish failures are stored on the messages and
// counted in the result; only storage failures are returned as errors.
func (h PublishOutboxCommandHandler) Handle(
	ctx context.Context,
	command PublishOutboxCommand,
) (PublishOutboxResult, error) {
	var result PublishOutboxResult
	if err := command.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	messages, err := outboxRepo.GetPending(ctx, command.BatchSize(), command.MaxAttempts())
	if err != nil {
		return result, err
	}
	if len(messages) == 0 {
		return result, nil
	}

	for _, m := range messages {
		if pubErr := h.publisher.Publish(ctx, m); pubErr != nil {
			m.MarkFailed(pubErr)
			result.Failed++
			result.LastError = pubErr
		} else {
			m.MarkPublished(h.clock())
			result.Published++
		}

		if err = outboxRepo.Update(ctx, m); err != nil {
			return PublishOutboxResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return PublishOutboxResult{}, err
	}

	return result, nil
}
