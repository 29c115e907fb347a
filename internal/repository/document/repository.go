// Package document implements the repositories on top of a document store.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/repository"
	"github.com/Mdtr3002/hms-be/internal/store"
	"github.com/Mdtr3002/hms-be/pkg/pagination"
)

// Fields an edit can never set.
var protected = []string{"_id", "createdAt", "deletedAt"}

// defaultSort is newest first, ties broken by the creation-ordered ObjectID.
var defaultSort = []store.SortField{
	{Field: "createdAt", Desc: true},
	{Field: "_id", Desc: true},
}

// live restricts filter to records that were not soft-deleted.
func live(filter store.Filter) store.Filter {
	return filter.NotExists("deletedAt")
}

// Repository is the generic live-record repository for one collection.
type Repository[T any, PT model.DocumentPtr[T]] struct {
	name string
	coll store.Collection
	now  func() time.Time
}

func New[T any, PT model.DocumentPtr[T]](s store.Store, name string) *Repository[T, PT] {
	return &Repository[T, PT]{
		name: name,
		coll: s.Collection(name),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *Repository[T, PT]) Name() string {
	return r.name
}

func (r *Repository[T, PT]) Create(ctx context.Context, doc *T) error {
	meta := PT(doc).Meta()
	if meta.ID.IsZero() {
		meta.ID = primitive.NewObjectID()
	}
	now := r.now()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	meta.DeletedAt = nil

	if err := r.coll.Insert(ctx, doc); err != nil {
		return fmt.Errorf("failed to create %s record: %w", r.name, err)
	}
	return nil
}

func (r *Repository[T, PT]) EditOne(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*T, error) {
	update := make(map[string]interface{}, len(set)+1)
	for k, v := range set {
		update[k] = v
	}
	for _, k := range protected {
		delete(update, k)
	}
	update["updatedAt"] = r.now()

	var doc T
	if err := r.coll.UpdateOne(ctx, live(store.Where().ID(id)), update, &doc); err != nil {
		return nil, r.wrap("edit", err)
	}
	return &doc, nil
}

func (r *Repository[T, PT]) GetByID(ctx context.Context, id primitive.ObjectID, projection repository.Projection) (*T, error) {
	return r.GetOne(ctx, store.Where().ID(id), projection)
}

func (r *Repository[T, PT]) GetOne(ctx context.Context, filter store.Filter, projection repository.Projection) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, live(filter), store.FindOptions{Sort: defaultSort, Omit: projection}, &doc)
	if err != nil {
		return nil, r.wrap("get", err)
	}
	return &doc, nil
}

func (r *Repository[T, PT]) Get(ctx context.Context, filter store.Filter, projection repository.Projection) ([]T, error) {
	docs := []T{}
	if err := r.coll.Find(ctx, live(filter), store.FindOptions{Sort: defaultSort, Omit: projection}, &docs); err != nil {
		return nil, r.wrap("list", err)
	}
	return docs, nil
}

// GetPaginated runs the count and the page query concurrently.
func (r *Repository[T, PT]) GetPaginated(ctx context.Context, filter store.Filter, projection repository.Projection, page pagination.Params) (int64, []T, error) {
	filter = live(filter)

	var (
		total int64
		docs  = []T{}
		g     errgroup.Group
	)
	g.Go(func() error {
		n, err := r.coll.Count(ctx, filter)
		total = n
		return err
	})
	g.Go(func() error {
		return r.coll.Find(ctx, filter, store.FindOptions{
			Sort:  defaultSort,
			Skip:  page.Offset(),
			Limit: page.Limit(),
			Omit:  projection,
		}, &docs)
	})
	if err := g.Wait(); err != nil {
		return 0, nil, r.wrap("paginate", err)
	}
	return total, docs, nil
}

func (r *Repository[T, PT]) Exists(ctx context.Context, filter store.Filter) (bool, error) {
	n, err := r.coll.Count(ctx, live(filter))
	if err != nil {
		return false, r.wrap("check", err)
	}
	return n > 0, nil
}

func (r *Repository[T, PT]) MarkAsDeleted(ctx context.Context, id primitive.ObjectID) (*T, error) {
	now := r.now()
	var doc T
	err := r.coll.UpdateOne(ctx, live(store.Where().ID(id)), map[string]interface{}{
		"deletedAt": now,
		"updatedAt": now,
	}, &doc)
	if err != nil {
		return nil, r.wrap("mark as deleted", err)
	}
	return &doc, nil
}

// DeleteOne removes the record whether or not it was soft-deleted.
func (r *Repository[T, PT]) DeleteOne(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	if err := r.coll.DeleteOne(ctx, store.Where().ID(id), &doc); err != nil {
		return nil, r.wrap("delete", err)
	}
	return &doc, nil
}

func (r *Repository[T, PT]) ListDeleted(ctx context.Context) ([]T, error) {
	docs := []T{}
	err := r.coll.Find(ctx, store.Where().Exists("deletedAt"), store.FindOptions{Sort: defaultSort}, &docs)
	if err != nil {
		return nil, r.wrap("list deleted", err)
	}
	return docs, nil
}

// PurgeDeleted hard-deletes records soft-deleted before the cutoff. Records removed
// concurrently by another worker are not counted.
func (r *Repository[T, PT]) PurgeDeleted(ctx context.Context, before time.Time) (int, error) {
	docs := []T{}
	filter := store.Where().Exists("deletedAt").Before("deletedAt", before)
	if err := r.coll.Find(ctx, filter, store.FindOptions{Sort: defaultSort}, &docs); err != nil {
		return 0, r.wrap("list purgeable", err)
	}

	purged := 0
	for i := range docs {
		id := PT(&docs[i]).Meta().ID
		if _, err := r.DeleteOne(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return purged, err
		}
		purged++
	}
	return purged, nil
}

func (r *Repository[T, PT]) wrap(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("failed to %s %s: %w", op, r.name, err)
}
