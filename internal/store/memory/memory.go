// Package memory is an in-process document store used by tests and local runs.
// Documents are kept in their JSON form so filters see the same field names as the
// database backends.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/Mdtr3002/hms-be/internal/store"
)

type document = map[string]interface{}

type Store struct {
	mu          sync.RWMutex
	collections map[string][]document
}

func New() *Store {
	return &Store{collections: make(map[string][]document)}
}

func (s *Store) Collection(name string) store.Collection {
	return &collection{store: s, name: name}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range store.Collections {
		if _, ok := s.collections[name]; !ok {
			s.collections[name] = nil
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) Insert(ctx context.Context, doc interface{}) error {
	d, err := toDocument(doc)
	if err != nil {
		return err
	}
	id, ok := d["_id"]
	if !ok || id == nil || id == "" {
		return fmt.Errorf("insert into %s: document has no _id", c.name)
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, existing := range c.store.collections[c.name] {
		if reflect.DeepEqual(existing["_id"], id) {
			return fmt.Errorf("insert into %s: duplicate _id %v", c.name, id)
		}
	}
	c.store.collections[c.name] = append(c.store.collections[c.name], d)
	return nil
}

func (c *collection) FindOne(ctx context.Context, filter store.Filter, opts store.FindOptions, out interface{}) error {
	opts.Limit = 1
	docs, err := c.query(filter, opts)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return store.ErrNotFound
	}
	return decode(docs[0], out)
}

func (c *collection) Find(ctx context.Context, filter store.Filter, opts store.FindOptions, out interface{}) error {
	docs, err := c.query(filter, opts)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []document{}
	}
	return decode(docs, out)
}

func (c *collection) Count(ctx context.Context, filter store.Filter) (int64, error) {
	docs, err := c.query(filter, store.FindOptions{})
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func (c *collection) UpdateOne(ctx context.Context, filter store.Filter, set map[string]interface{}, out interface{}) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for i, d := range c.store.collections[c.name] {
		ok, err := matches(d, filter)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		updated := clone(d)
		for field, value := range set {
			normalized, err := normalize(value)
			if err != nil {
				return fmt.Errorf("update %s.%s: %w", c.name, field, err)
			}
			updated[field] = normalized
		}
		c.store.collections[c.name][i] = updated

		if out == nil {
			return nil
		}
		return decode(updated, out)
	}
	return store.ErrNotFound
}

func (c *collection) DeleteOne(ctx context.Context, filter store.Filter, out interface{}) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs := c.store.collections[c.name]
	for i, d := range docs {
		ok, err := matches(d, filter)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		c.store.collections[c.name] = append(docs[:i:i], docs[i+1:]...)
		if out == nil {
			return nil
		}
		return decode(d, out)
	}
	return store.ErrNotFound
}

func (c *collection) query(filter store.Filter, opts store.FindOptions) ([]document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var docs []document
	for _, d := range c.store.collections[c.name] {
		ok, err := matches(d, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			docs = append(docs, d)
		}
	}

	if len(opts.Sort) > 0 {
		sort.SliceStable(docs, func(i, j int) bool {
			for _, s := range opts.Sort {
				cmp := compare(docs[i][s.Field], docs[j][s.Field])
				if cmp == 0 {
					continue
				}
				if s.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(docs)) {
			return nil, nil
		}
		docs = docs[opts.Skip:]
	}
	if opts.Limit > 0 && int64(len(docs)) > opts.Limit {
		docs = docs[:opts.Limit]
	}

	out := make([]document, len(docs))
	for i, d := range docs {
		out[i] = clone(d)
		for _, field := range opts.Omit {
			delete(out[i], field)
		}
	}
	return out, nil
}

func matches(d document, filter store.Filter) (bool, error) {
	for _, cond := range filter.Conds() {
		value, present := d[cond.Field]

		switch cond.Op {
		case store.OpExists:
			if !present {
				return false, nil
			}
		case store.OpNotExists:
			if present {
				return false, nil
			}
		case store.OpEq:
			want, err := normalize(cond.Value)
			if err != nil {
				return false, err
			}
			if !present || !equal(value, want) {
				return false, nil
			}
		case store.OpIn:
			if !present {
				return false, nil
			}
			values, _ := cond.Value.([]interface{})
			found := false
			for _, v := range values {
				want, err := normalize(v)
				if err != nil {
					return false, err
				}
				if equal(value, want) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		case store.OpBefore:
			bound, err := normalize(cond.Value)
			if err != nil {
				return false, err
			}
			if !present || compare(value, bound) >= 0 {
				return false, nil
			}
		case store.OpRegex:
			pattern, _ := cond.Value.(string)
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false, fmt.Errorf("invalid regular expression %q: %w", pattern, err)
			}
			s, ok := value.(string)
			if !ok || !re.MatchString(s) {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported filter op %d", cond.Op)
		}
	}
	return true, nil
}

// equal compares JSON values; an array field matches a scalar it contains.
func equal(value, want interface{}) bool {
	if reflect.DeepEqual(value, want) {
		return true
	}
	if arr, ok := value.([]interface{}); ok {
		if _, wantArr := want.([]interface{}); !wantArr {
			for _, v := range arr {
				if reflect.DeepEqual(v, want) {
					return true
				}
			}
		}
	}
	return false
}

// compare orders JSON values. Strings holding RFC 3339 timestamps compare as times.
func compare(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			at, aErr := time.Parse(time.RFC3339Nano, av)
			bt, bErr := time.Parse(time.RFC3339Nano, bv)
			if aErr == nil && bErr == nil {
				return at.Compare(bt)
			}
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	}
	return 0
}

func toDocument(v interface{}) (document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var d document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("document must encode as an object: %w", err)
	}
	return d, nil
}

func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func clone(d document) document {
	out := make(document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func decode(v interface{}, out interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
