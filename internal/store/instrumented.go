package store

import (
	"context"
	"errors"
	"time"

	"github.com/Mdtr3002/hms-be/pkg/metrics"
)

// Instrument wraps s so every collection operation is counted and timed.
func Instrument(s Store, m *metrics.Metrics) Store {
	if m == nil {
		return s
	}
	return &instrumentedStore{Store: s, metrics: m}
}

type instrumentedStore struct {
	Store
	metrics *metrics.Metrics
}

func (s *instrumentedStore) Collection(name string) Collection {
	return &instrumentedCollection{
		next:    s.Store.Collection(name),
		name:    name,
		metrics: s.metrics,
	}
}

type instrumentedCollection struct {
	next    Collection
	name    string
	metrics *metrics.Metrics
}

func (c *instrumentedCollection) observe(op string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	c.metrics.DatabaseOperations.WithLabelValues(c.name, op, status).Inc()
	c.metrics.DatabaseLatency.WithLabelValues(c.name, op).Observe(time.Since(start).Seconds())
}

func (c *instrumentedCollection) Insert(ctx context.Context, doc interface{}) (err error) {
	defer func(start time.Time) { c.observe("insert", start, err) }(time.Now())
	return c.next.Insert(ctx, doc)
}

func (c *instrumentedCollection) FindOne(ctx context.Context, filter Filter, opts FindOptions, out interface{}) (err error) {
	defer func(start time.Time) { c.observe("find_one", start, err) }(time.Now())
	return c.next.FindOne(ctx, filter, opts, out)
}

func (c *instrumentedCollection) Find(ctx context.Context, filter Filter, opts FindOptions, out interface{}) (err error) {
	defer func(start time.Time) { c.observe("find", start, err) }(time.Now())
	return c.next.Find(ctx, filter, opts, out)
}

func (c *instrumentedCollection) Count(ctx context.Context, filter Filter) (n int64, err error) {
	defer func(start time.Time) { c.observe("count", start, err) }(time.Now())
	return c.next.Count(ctx, filter)
}

func (c *instrumentedCollection) UpdateOne(ctx context.Context, filter Filter, set map[string]interface{}, out interface{}) (err error) {
	defer func(start time.Time) { c.observe("update_one", start, err) }(time.Now())
	return c.next.UpdateOne(ctx, filter, set, out)
}

func (c *instrumentedCollection) DeleteOne(ctx context.Context, filter Filter, out interface{}) (err error) {
	defer func(start time.Time) { c.observe("delete_one", start, err) }(time.Now())
	return c.next.DeleteOne(ctx, filter, out)
}
