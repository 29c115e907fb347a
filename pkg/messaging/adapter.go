package messaging

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/Mdtr3002/hms-be/pkg/metrics"
)

// BrokerPublisher publishes change events on a broker channel.
type BrokerPublisher struct {
	broker  Broker
	channel string
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewBrokerPublisher(broker Broker, channel string, logger zerolog.Logger, m *metrics.Metrics) *BrokerPublisher {
	return &BrokerPublisher{
		broker:  broker,
		channel: channel,
		logger:  logger.With().Str("channel", channel).Logger(),
		metrics: m,
	}
}

func (p *BrokerPublisher) Publish(ctx context.Context, event ChangeEvent) {
	if err := p.broker.Publish(ctx, p.channel, event); err != nil {
		p.logger.Warn().Err(err).Str("type", event.Type).Str("id", event.ID).Msg("failed to publish change event")
		if p.metrics != nil {
			p.metrics.EventsFailed.WithLabelValues(event.Type).Inc()
		}
		return
	}
	if p.metrics != nil {
		p.metrics.EventsPublished.WithLabelValues(event.Type).Inc()
	}
}

// NoopPublisher drops every event. It is used when no queue is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ChangeEvent) {}

// Consume decodes change events from channel and passes them to handler until ctx is
// done or the subscription closes. Handler and decode errors are logged and skipped.
func Consume(ctx context.Context, broker Broker, channel string, logger zerolog.Logger, handler func(context.Context, ChangeEvent) error) error {
	msgChan, err := broker.Subscribe(ctx, channel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgChan:
			if !ok {
				return nil
			}

			var event ChangeEvent
			if err := json.Unmarshal(msg, &event); err != nil {
				logger.Warn().Err(err).Msg("skipping malformed change event")
				continue
			}
			if err := handler(ctx, event); err != nil {
				logger.Error().Err(err).Str("type", event.Type).Msg("change event handler failed")
			}
		}
	}
}
