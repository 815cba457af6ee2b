// Package audit turns domain events into audit log lines.
package audit

import (
	"context"

	"hbnb/pkg/rabbitmq"

	"github.com/rs/zerolog"
)

// Recorder writes one structured log line per domain event.
type Recorder struct {
	logger zerolog.Logger
}

func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logger.With().Str("component", "audit").Logger()}
}

// Handle records ev. It matches the handler signature of rabbitmq.Client.Consume.
func (r *Recorder) Handle(_ context.Context, ev rabbitmq.Event) error {
	r.logger.Info().
		Str("event_id", ev.ID).
		Str("event", ev.Type).
		Time("occurred_at", ev.OccurredAt).
		RawJSON("payload", ev.Payload).
		Msg("audit")
	return nil
}
