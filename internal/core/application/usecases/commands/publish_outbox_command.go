package commands

import (
	"errors"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrPublishOutboxCommandIsNotConstructed = errors.New(
	"PublishOutboxCommand must be created via NewPublishOutboxCommand constructor",
)

// PublishOutboxCommand asks the relay to deliver one batch of pending outbox messages.
type PublishOutboxCommand struct {
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

// NewPublishOutboxCommand creates the command. Messages that already failed
// maxAttempts times are left alone.
func NewPublishOutboxCommand(batchSize, maxAttempts int) (PublishOutboxCommand, error) {
	var sizeErr, attemptsErr error
	if batchSize < 1 {
		sizeErr = errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	if maxAttempts < 1 {
		attemptsErr = errs.NewValueIsOutOfRangeError("maxAttempts", maxAttempts, 1, "unbounded")
	}
	if err := errors.Join(sizeErr, attemptsErr); err != nil {
		return PublishOutboxCommand{}, err
	}

	return PublishOutboxCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxCommandIsNotConstructed)
}

func (c PublishOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c PublishOutboxCommand) MaxAttempts() int {
	return c.maxAttempts
}
