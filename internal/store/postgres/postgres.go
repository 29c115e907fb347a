// Package postgres stores documents as JSONB rows, one table per collection.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Mdtr3002/hms-be/internal/store"
)

type Config struct {
	URI      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c Config) dsn() string {
	if c.URI != "" {
		return c.URI
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}

func NewDB(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Collection(name string) store.Collection {
	return &collection{db: s.db, table: name}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

// Migrate creates one table per collection with a partial index over live rows.
func (s *Store) Migrate(ctx context.Context) error {
	for _, name := range store.Collections {
		table := pq.QuoteIdentifier(name)
		index := pq.QuoteIdentifier(name + "_live_created_at_idx")

		stmts := []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				doc        JSONB NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (created_at DESC, id DESC) WHERE NOT (doc ? 'deletedAt')`, index, table),
		}
		for _, stmt := range stmts {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to migrate %s: %w", name, err)
			}
		}
		log.Info().Str("table", name).Msg("table ready")
	}
	return nil
}

type collection struct {
	db    *sqlx.DB
	table string
}

type header struct {
	ID        string     `json:"_id"`
	CreatedAt *time.Time `json:"createdAt"`
}

func (c *collection) Insert(ctx context.Context, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return fmt.Errorf("document must encode as an object: %w", err)
	}
	if h.ID == "" {
		return fmt.Errorf("insert into %s: document has no _id", c.table)
	}

	createdAt := time.Now()
	if h.CreatedAt != nil && !h.CreatedAt.IsZero() {
		createdAt = *h.CreatedAt
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc, created_at) VALUES ($1, $2::jsonb, $3)`, pq.QuoteIdentifier(c.table))
	if _, err := c.db.ExecContext(ctx, query, h.ID, string(raw), createdAt); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.table, err)
	}
	return nil
}

func (c *collection) FindOne(ctx context.Context, filter store.Filter, opts store.FindOptions, out interface{}) error {
	opts.Limit = 1
	var b builder
	query, err := b.find(c.table, filter, opts)
	if err != nil {
		return err
	}

	var doc string
	if err := c.db.GetContext(ctx, &doc, query, b.args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		return fmt.Errorf("failed to query %s: %w", c.table, err)
	}
	return json.Unmarshal([]byte(doc), out)
}

func (c *collection) Find(ctx context.Context, filter store.Filter, opts store.FindOptions, out interface{}) error {
	var b builder
	query, err := b.find(c.table, filter, opts)
	if err != nil {
		return err
	}

	var docs []string
	if err := c.db.SelectContext(ctx, &docs, query, b.args...); err != nil {
		return fmt.Errorf("failed to query %s: %w", c.table, err)
	}
	return json.Unmarshal([]byte("["+strings.Join(docs, ",")+"]"), out)
}

func (c *collection) Count(ctx context.Context, filter store.Filter) (int64, error) {
	var b builder
	where, err := b.where(filter)
	if err != nil {
		return 0, err
	}

	var n int64
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", pq.QuoteIdentifier(c.table), where)
	if err := c.db.GetContext(ctx, &n, query, b.args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.table, err)
	}
	return n, nil
}

func (c *collection) UpdateOne(ctx context.Context, filter store.Filter, set map[string]interface{}, out interface{}) error {
	patch, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode update: %w", err)
	}

	var b builder
	patchArg := b.arg(string(patch))
	where, err := b.where(filter)
	if err != nil {
		return err
	}

	table := pq.QuoteIdentifier(c.table)
	query := fmt.Sprintf(
		`UPDATE %s SET doc = doc || %s::jsonb WHERE id = (SELECT id FROM %s WHERE %s LIMIT 1) RETURNING doc`,
		table, patchArg, table, where,
	)
	return c.returning(ctx, query, b.args, out)
}

func (c *collection) DeleteOne(ctx context.Context, filter store.Filter, out interface{}) error {
	var b builder
	where, err := b.where(filter)
	if err != nil {
		return err
	}

	table := pq.QuoteIdentifier(c.table)
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE id = (SELECT id FROM %s WHERE %s LIMIT 1) RETURNING doc`,
		table, table, where,
	)
	return c.returning(ctx, query, b.args, out)
}

func (c *collection) returning(ctx context.Context, query string, args []interface{}, out interface{}) error {
	var doc string
	if err := c.db.QueryRowxContext(ctx, query, args...).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		return fmt.Errorf("failed to write %s: %w", c.table, err)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(doc), out)
}
