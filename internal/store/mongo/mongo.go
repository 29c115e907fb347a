package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/Mdtr3002/hms-be/internal/store"
)

const defaultDatabase = "hms"

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection. The database name comes from
// cfg.Database, then from the URI path.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cs, err := connstring.ParseAndValidate(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mongo uri: %w", err)
	}

	name := cfg.Database
	if name == "" {
		name = cs.Database
	}
	if name == "" {
		name = defaultDatabase
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Info().Str("database", name).Msg("connected to mongo")
	return &Store{client: client, db: client.Database(name)}, nil
}

func (s *Store) Collection(name string) store.Collection {
	return &collection{coll: s.db.Collection(name)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// references lists the fields other documents point at, per collection.
var references = map[string][]string{
	store.Chapters:  {"subject"},
	store.Questions: {"subject", "chapter"},
	store.Quizzes:   {"subject", "chapter"},
	store.Exams:     {"subject"},
	store.Events:    {"subject"},
}

// Migrate creates the indexes backing live-record listing and reference checks.
func (s *Store) Migrate(ctx context.Context) error {
	for _, name := range store.Collections {
		models := []mongo.IndexModel{{
			Keys: bson.D{{Key: "deletedAt", Value: 1}, {Key: "createdAt", Value: -1}},
		}}
		for _, field := range references[name] {
			models = append(models, mongo.IndexModel{
				Keys: bson.D{{Key: field, Value: 1}, {Key: "deletedAt", Value: 1}},
			})
		}

		created, err := s.db.Collection(name).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
		log.Info().Str("collection", name).Strs("indexes", created).Msg("indexes ready")
	}
	return nil
}

type collection struct {
	coll *mongo.Collection
}

// toBSON translates a store filter into a MongoDB query document.
func toBSON(filter store.Filter) bson.M {
	conds := filter.Conds()
	parts := make([]bson.M, 0, len(conds))

	for _, c := range conds {
		var expr bson.M
		switch c.Op {
		case store.OpEq:
			expr = bson.M{"$eq": c.Value}
		case store.OpIn:
			values, _ := c.Value.([]interface{})
			expr = bson.M{"$in": bson.A(values)}
		case store.OpRegex:
			pattern, _ := c.Value.(string)
			expr = bson.M{"$regex": primitive.Regex{Pattern: pattern}}
		case store.OpExists:
			expr = bson.M{"$exists": true}
		case store.OpNotExists:
			expr = bson.M{"$exists": false}
		case store.OpBefore:
			expr = bson.M{"$lt": c.Value}
		}
		parts = append(parts, bson.M{c.Field: expr})
	}

	switch len(parts) {
	case 0:
		return bson.M{}
	case 1:
		return parts[0]
	}
	return bson.M{"$and": parts}
}

func sortDoc(fields []store.SortField) bson.D {
	if len(fields) == 0 {
		return nil
	}
	d := make(bson.D, 0, len(fields))
	for _, f := range fields {
		dir := 1
		if f.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: f.Field, Value: dir})
	}
	return d
}

func projection(omit []string) bson.M {
	if len(omit) == 0 {
		return nil
	}
	p := make(bson.M, len(omit))
	for _, f := range omit {
		p[f] = 0
	}
	return p
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func (c *collection) Insert(ctx context.Context, doc interface{}) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *collection) FindOne(ctx context.Context, filter store.Filter, opts store.FindOptions, out interface{}) error {
	o := options.FindOne().SetSkip(opts.Skip)
	if s := sortDoc(opts.Sort); s != nil {
		o.SetSort(s)
	}
	if p := projection(opts.Omit); p != nil {
		o.SetProjection(p)
	}
	return notFound(c.coll.FindOne(ctx, toBSON(filter), o).Decode(out))
}

func (c *collection) Find(ctx context.Context, filter store.Filter, opts store.FindOptions, out interface{}) error {
	o := options.Find()
	if s := sortDoc(opts.Sort); s != nil {
		o.SetSort(s)
	}
	if opts.Skip > 0 {
		o.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		o.SetLimit(opts.Limit)
	}
	if p := projection(opts.Omit); p != nil {
		o.SetProjection(p)
	}

	cursor, err := c.coll.Find(ctx, toBSON(filter), o)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}
	return cursor.All(ctx, out)
}

func (c *collection) Count(ctx context.Context, filter store.Filter) (int64, error) {
	return c.coll.CountDocuments(ctx, toBSON(filter))
}

func (c *collection) UpdateOne(ctx context.Context, filter store.Filter, set map[string]interface{}, out interface{}) error {
	res := c.coll.FindOneAndUpdate(ctx, toBSON(filter), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if out == nil {
		return notFound(res.Err())
	}
	return notFound(res.Decode(out))
}

func (c *collection) DeleteOne(ctx context.Context, filter store.Filter, out interface{}) error {
	res := c.coll.FindOneAndDelete(ctx, toBSON(filter))
	if out == nil {
		return notFound(res.Err())
	}
	return notFound(res.Decode(out))
}
