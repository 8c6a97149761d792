package notify

import (
	"context"

	"recruit-backend/internal/shared/telemetry"
)

// LogNotifier writes status events to the application log. Used when no
// queue is configured so the rest of the system can stay oblivious.
type LogNotifier struct{}

func (LogNotifier) StatusChanged(_ context.Context, event StatusEvent) error {
	telemetry.Info("status event", map[string]any{
		"application_id": event.ApplicationID,
		"from_status":    event.FromStatus,
		"to_status":      event.ToStatus,
		"actor_id":       event.ActorID,
	})
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
