package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mdtr3002/hms-be/pkg/metrics"
)

type fakeBroker struct {
	mu        sync.Mutex
	published []interface{}
	err       error
	messages  chan []byte
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, message)
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string) (<-chan []byte, error) {
	return b.messages, nil
}

func (b *fakeBroker) Close() error { return nil }

func TestNewChangeEvent(t *testing.T) {
	evt := NewChangeEvent("patients", ActionCreated, "abc")

	assert.Equal(t, "patients.created", evt.Type)
	assert.Equal(t, "abc", evt.ID)
	assert.WithinDuration(t, time.Now(), evt.OccurredAt, time.Second)
}

func TestBrokerPublisher(t *testing.T) {
	m := metrics.New("test")
	broker := &fakeBroker{}
	p := NewBrokerPublisher(broker, DataIngestionChannel, zerolog.Nop(), m)

	p.Publish(context.Background(), NewChangeEvent("news", ActionUpdated, "1"))
	require.Len(t, broker.published, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("news.updated")))

	broker.err = errors.New("down")
	p.Publish(context.Background(), NewChangeEvent("news", ActionUpdated, "2"))
	assert.Len(t, broker.published, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsFailed.WithLabelValues("news.updated")))
}

func TestConsume(t *testing.T) {
	broker := &fakeBroker{messages: make(chan []byte, 3)}
	raw, err := json.Marshal(NewChangeEvent("staffs", ActionSoftDeleted, "7"))
	require.NoError(t, err)

	broker.messages <- []byte("not json")
	broker.messages <- raw
	close(broker.messages)

	var got []ChangeEvent
	err = Consume(context.Background(), broker, DataIngestionChannel, zerolog.Nop(), func(_ context.Context, evt ChangeEvent) error {
		got = append(got, evt)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "staffs.deleted", got[0].Type)
	assert.Equal(t, ActionSoftDeleted, got[0].Action)
}
