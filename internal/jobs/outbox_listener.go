package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

type relayTrigger interface {
	Trigger(ctx context.Context, trigger string) bool
}

// OutboxListener runs the relay as soon as a transaction that enqueued a
// notification commits, using Postgres LISTEN/NOTIFY. The cron schedule
// still covers anything a lost connection made it miss.
type OutboxListener struct {
	dsn     string
	channel string
	relay   relayTrigger
	logger  *slog.Logger

	listener *pq.Listener
	stop     chan struct{}
	done     sync.WaitGroup
}

func NewOutboxListener(dsn, channel string, relay relayTrigger, logger *slog.Logger) *OutboxListener {
	return &OutboxListener{
		dsn:     dsn,
		channel: channel,
		relay:   relay,
		logger:  logger.With("component", "outbox_listener"),
	}
}

func (l *OutboxListener) Start() error {
	l.listener = pq.NewListener(l.dsn, listenerMinReconnect, listenerMaxReconnect, l.onEvent)
	if err := l.listener.Listen(l.channel); err != nil {
		_ = l.listener.Close()
		return err
	}

	l.stop = make(chan struct{})
	l.done.Add(1)
	go l.loop()

	l.logger.InfoContext(context.Background(), "Outbox listener started", "channel", l.channel)
	return nil
}

func (l *OutboxListener) Stop() {
	if l.stop == nil {
		return
	}
	close(l.stop)
	l.done.Wait()
	if err := l.listener.Close(); err != nil {
		l.logger.WarnContext(context.Background(), "Outbox listener close failed", "error", err)
	}
	l.stop = nil
	l.logger.InfoContext(context.Background(), "Outbox listener stopped")
}

func (l *OutboxListener) loop() {
	defer l.done.Done()

	ping := time.NewTicker(listenerPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-l.stop:
			return
		case n := <-l.listener.Notify:
			// nil after a reconnect; rows may have been missed, so run anyway.
			if n == nil {
				l.logger.InfoContext(context.Background(), "Outbox listener reconnected")
			}
			l.relay.Trigger(context.Background(), TriggerNotify)
		case <-ping.C:
			if err := l.listener.Ping(); err != nil {
				l.logger.WarnContext(context.Background(), "Outbox listener ping failed", "error", err)
			}
		}
	}
}

func (l *OutboxListener) onEvent(ev pq.ListenerEventType, err error) {
	if err != nil {
		l.logger.WarnContext(context.Background(), "Outbox listener connection event", "event", ev, "error", err)
	}
}
