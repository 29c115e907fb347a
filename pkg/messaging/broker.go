package messaging

import (
	"context"
	"time"
)

// DataIngestionChannel carries record change events.
const DataIngestionChannel = "data_ingestion"

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Publisher announces record changes. Publishing never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent)
}

// Action names a record change.
type Action string

const (
	ActionCreated     Action = "created"
	ActionUpdated     Action = "updated"
	ActionSoftDeleted Action = "deleted"
	ActionPurged      Action = "purged"
)

type ChangeEvent struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	Action     Action    `json:"action"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewChangeEvent stamps an event for id in collection.
func NewChangeEvent(collection string, action Action, id string) ChangeEvent {
	return ChangeEvent{
		Type:       collection + "." + string(action),
		Collection: collection,
		Action:     action,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	}
}
