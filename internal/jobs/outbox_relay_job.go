package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every second.
const DefaultOutboxRelaySchedule = "* * * * * *"

// OutboxPublisher is the use case the relay job drives.
type OutboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (commands.PublishOutboxResult, error)
}

// OutboxRelayJob periodically publishes pending order-changed messages.
// Runs that overlap a still running one are skipped.
type OutboxRelayJob struct {
	handler  OutboxPublisher
	command  commands.PublishOutboxCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	// ctx is passed to every relay pass and cancelled by Stop
	ctx    context.Context
	cancel context.CancelFunc
}

// NewOutboxRelayJob creates the relay job. An empty schedule means
// DefaultOutboxRelaySchedule; schedules use the six-field cron format.
func NewOutboxRelayJob(
	handler OutboxPublisher,
	command commands.PublishOutboxCommand,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &OutboxRelayJob{
		ctx:      ctx,
		cancel:   cancel,
		handler:  handler,
		command:  command,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Stop cancels a running relay pass and waits for it to return.
func (j *OutboxRelayJob) Stop() {
	stopped := j.cron.Stop()
	j.cancel()
	<-stopped.Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(ctx context.Context) {
	result, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}

	metrics.OutboxPublishedTotal.Add(float64(result.Published))
	metrics.OutboxFailedTotal.Add(float64(result.Failed))

	if result.Failed > 0 {
		j.logger.WarnContext(ctx, "Outbox messages not delivered",
			"published", result.Published,
			"failed", result.Failed,
			"last_error", result.LastError,
		)
		return
	}
	if result.Published > 0 {
		j.logger.DebugContext(ctx, "Outbox messages delivered", "published", result.Published)
	}
}
