package worker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Mdtr3002/hms-be/pkg/messaging"
)

// LogChangeEvents returns a handler that records every change event it receives.
func LogChangeEvents(logger zerolog.Logger) func(context.Context, messaging.ChangeEvent) error {
	return func(_ context.Context, event messaging.ChangeEvent) error {
		logger.Info().
			Str("type", event.Type).
			Str("collection", event.Collection).
			Str("action", string(event.Action)).
			Str("id", event.ID).
			Time("occurred_at", event.OccurredAt).
			Msg("change event")
		return nil
	}
}
