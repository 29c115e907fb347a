package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document matches a single-document operation.
var ErrNotFound = errors.New("document not found")

// Collection names
const (
	Patients  = "patients"
	Staffs    = "staffs"
	Subjects  = "subjects"
	Chapters  = "chapters"
	Questions = "questions"
	Quizzes   = "quizzes"
	Exams     = "exams"
	Events    = "events"
	News      = "news"
)

// Collections lists every collection the service owns.
var Collections = []string{Patients, Staffs, Subjects, Chapters, Questions, Quizzes, Exams, Events, News}

// SortField orders results by Field, descending when Desc is set.
type SortField struct {
	Field string
	Desc  bool
}

// FindOptions controls the shape of query results.
type FindOptions struct {
	Sort []SortField
	Skip int64
	// Limit of zero means unlimited.
	Limit int64
	// Omit lists top-level fields excluded from the returned documents.
	Omit []string
}

// Collection is a set of documents keyed by "_id". Documents are structs carrying
// json and bson tags with identical names.
type Collection interface {
	Insert(ctx context.Context, doc interface{}) error
	// FindOne decodes the first match into out or returns ErrNotFound.
	FindOne(ctx context.Context, filter Filter, opts FindOptions, out interface{}) error
	// Find decodes all matches into out, a pointer to a slice.
	Find(ctx context.Context, filter Filter, opts FindOptions, out interface{}) error
	Count(ctx context.Context, filter Filter) (int64, error)
	// UpdateOne sets the given top-level fields on the first match and decodes the
	// updated document into out.
	UpdateOne(ctx context.Context, filter Filter, set map[string]interface{}, out interface{}) error
	// DeleteOne removes the first match and decodes the removed document into out.
	DeleteOne(ctx context.Context, filter Filter, out interface{}) error
}

// Store hands out collections backed by a single database.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	// Migrate prepares indexes or tables for every known collection.
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}
