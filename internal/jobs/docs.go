// Package jobs runs the background side of the order workflow: relaying
// queued notifications from the outbox to the notifier.
//
// # Available Jobs
//
//  1. NotificationRelayJob - runs the relay on a cron schedule (every five
//     seconds by default, github.com/robfig/cron/v3 with seconds) and on demand.
//  2. OutboxListener - LISTENs on the outbox channel with github.com/lib/pq
//     and triggers the relay as soon as a notifying transaction commits.
//
// # Usage
//
//	relay := jobs.NewNotificationRelayJob(handler, cmd, cfg.RelaySchedule, m, logger)
//	listener := jobs.NewOutboxListener(cfg.DSN(), outboxrepo.NotifyChannel, relay, logger)
//
//	jobManager := jobs.NewJobManager(relay, listener)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Relay errors are logged and counted; the next trigger retries. Individual
// delivery failures are recorded on the outbox row by the relay itself.
package jobs
