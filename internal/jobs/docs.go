// Package jobs provides scheduled background tasks for the logistics service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and drive application use cases.
//
// # Available Jobs
//
// OutboxRelayJob publishes the order-changed messages that workflow commands
// write to the outbox table in the same transaction as the order change.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(publishHandler, publishCommand, "", logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Storage errors of a relay pass are logged and the pass is retried on the next tick
//   - Broker failures are stored on the message by the use case and logged as warnings
//   - Failed job starts stop any already running jobs
package jobs
