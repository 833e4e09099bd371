package notify

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/notification"
)

// LogNotifier records each notification as one structured log line. It is
// the default when no push transport is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log-notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, nt *notification.Notification) error {
	if err := nt.Validate(); err != nil {
		return err
	}

	msg := NewMessage(nt)
	n.logger.InfoContext(ctx, "notification",
		"id", msg.ID,
		"event", msg.Event,
		"channel", msg.Channel,
		"recipient_id", msg.RecipientID,
		"order_id", msg.OrderID,
		"modification_id", msg.ModificationID,
		"reason", msg.Payload.Reason,
		"admin_response", msg.Payload.AdminResponse,
	)
	return nil
}
