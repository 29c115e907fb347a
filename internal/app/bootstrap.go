package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Mdtr3002/hms-be/internal/config"
	"github.com/Mdtr3002/hms-be/internal/store"
	"github.com/Mdtr3002/hms-be/internal/store/memory"
	"github.com/Mdtr3002/hms-be/internal/store/mongo"
	"github.com/Mdtr3002/hms-be/internal/store/postgres"
	"github.com/Mdtr3002/hms-be/pkg/messaging"
	"github.com/Mdtr3002/hms-be/pkg/messaging/redis"
	"github.com/Mdtr3002/hms-be/pkg/metrics"
)

// OpenStore connects to the configured database driver.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		s, err := mongo.New(ctx, mongo.Config{URI: cfg.URI, Database: cfg.Name})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		// The default URI targets mongo; fall back to the discrete fields then.
		uri := cfg.URI
		if strings.HasPrefix(uri, "mongodb") {
			uri = ""
		}
		db, err := postgres.NewDB(postgres.Config{
			URI:      uri,
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			Name:     cfg.Name,
			SSLMode:  cfg.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		return postgres.New(db), nil
	case config.DriverMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// OpenBroker connects to the change event queue. It returns nil when the queue is
// not configured.
func OpenBroker(ctx context.Context, cfg config.QueueConfig, logger zerolog.Logger) (messaging.Broker, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return redis.NewRedisBroker(ctx, redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
	}, logger)
}

// NewPublisher publishes on broker, or drops events when broker is nil.
func NewPublisher(broker messaging.Broker, channel string, logger zerolog.Logger, m *metrics.Metrics) messaging.Publisher {
	if broker == nil {
		return messaging.NoopPublisher{}
	}
	return messaging.NewBrokerPublisher(broker, channel, logger, m)
}
