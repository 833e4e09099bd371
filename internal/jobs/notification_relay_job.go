package jobs

import (
	"context"
	"log/slog"
	"sync"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/metrics"

	"github.com/robfig/cron/v3"
)

// Relay triggers.
const (
	TriggerSchedule = "schedule"
	TriggerNotify   = "notify"
)

// DefaultRelaySchedule runs the relay every five seconds.
const DefaultRelaySchedule = "*/5 * * * * *"

// maxBatchesPerRun bounds how many full batches one run drains before it
// yields to the next trigger. A batch with failed deliveries ends the run
// early, so each trigger spends at most one attempt per notification.
const maxBatchesPerRun = 20

type notificationRelay interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchResult, error)
}

// NotificationRelayJob delivers queued outbox notifications on a cron
// schedule and whenever Trigger is called. Runs never overlap: a trigger
// that arrives during a run is dropped, since the running pass will pick
// up the new rows anyway.
type NotificationRelayJob struct {
	relay    notificationRelay
	cmd      commands.DispatchNotificationsCommand
	schedule string
	metrics  *metrics.Metrics
	cron     *cron.Cron
	logger   *slog.Logger

	running sync.Mutex
}

func NewNotificationRelayJob(
	relay notificationRelay,
	cmd commands.DispatchNotificationsCommand,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *NotificationRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	return &NotificationRelayJob{
		relay:    relay,
		cmd:      cmd,
		schedule: schedule,
		metrics:  m,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "notification_relay_job"),
	}
}

func (j *NotificationRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Trigger(context.Background(), TriggerSchedule)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started", "schedule", j.schedule)
	return nil
}

// Stop halts the schedule and waits for a running pass to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.running.Lock()
	defer j.running.Unlock()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}

// Trigger runs one relay pass unless one is already running. It reports
// whether a pass ran.
func (j *NotificationRelayJob) Trigger(ctx context.Context, trigger string) bool {
	if !j.running.TryLock() {
		return false
	}
	defer j.running.Unlock()

	for range maxBatchesPerRun {
		result, err := j.relay.Handle(ctx, j.cmd)
		if err != nil {
			j.metrics.RelayRuns.WithLabelValues(trigger, "error").Inc()
			j.logger.ErrorContext(ctx, "Notification relay failed", "trigger", trigger, "error", err)
			return true
		}

		j.metrics.NotificationsSent.Add(float64(result.Delivered))
		j.metrics.NotificationsFailed.Add(float64(result.Failed))
		if result.Failed > 0 {
			// Failed rows stay claimable; the next trigger retries them.
			j.logger.WarnContext(ctx, "Some notifications could not be delivered",
				"trigger", trigger, "delivered", result.Delivered, "failed", result.Failed)
			break
		}

		if result.Delivered+result.Failed < j.cmd.BatchSize() {
			break
		}
	}

	j.metrics.RelayRuns.WithLabelValues(trigger, "ok").Inc()
	return true
}
