// Package service holds the helpers shared by the entity services.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/repository"
	"github.com/Mdtr3002/hms-be/internal/store"
	"github.com/Mdtr3002/hms-be/pkg/auth"
	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
	"github.com/Mdtr3002/hms-be/pkg/messaging"
	"github.com/Mdtr3002/hms-be/pkg/pagination"
	"github.com/Mdtr3002/hms-be/pkg/validator"
)

// ListQuery is a parsed list request.
type ListQuery struct {
	Filter store.Filter
	Page   pagination.Params
}

// Deps are the collaborators every entity service takes besides its repositories.
type Deps struct {
	Validator validator.Validator
	Publisher messaging.Publisher
}

// WithDefaults fills unset collaborators.
func (d Deps) WithDefaults() Deps {
	if d.Validator == nil {
		d.Validator = validator.New()
	}
	if d.Publisher == nil {
		d.Publisher = messaging.NoopPublisher{}
	}
	return d
}

// List runs q against repo and shapes the payload: {total, result} when pagination is
// off, {total, pageCount, pageSize, result} otherwise.
func List[T any](ctx context.Context, repo repository.Repository[T], q ListQuery) (interface{}, error) {
	if !q.Page.Paginate {
		result, err := repo.Get(ctx, q.Filter, repository.DefaultProjection)
		if err != nil {
			return nil, err
		}
		return pagination.NewAll(result), nil
	}

	total, result, err := repo.GetPaginated(ctx, q.Filter, repository.DefaultProjection, q.Page)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(q.Page, total, result), nil
}

// Map converts a list payload produced by List, applying fn to every item.
func Map[T, U any](payload interface{}, fn func([]T) ([]U, error)) (interface{}, error) {
	switch p := payload.(type) {
	case pagination.Page[T]:
		result, err := fn(p.Result)
		if err != nil {
			return nil, err
		}
		return pagination.Page[U]{Total: p.Total, PageCount: p.PageCount, PageSize: p.PageSize, Result: nonNil(result)}, nil
	case pagination.All[T]:
		result, err := fn(p.Result)
		if err != nil {
			return nil, err
		}
		return pagination.NewAll(result), nil
	}
	return nil, fmt.Errorf("unexpected list payload %T", payload)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// NotFound turns a repository miss into a not-found error carrying message.
func NotFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(message)
	}
	return err
}

// Validate runs struct validation and reports failures as validation errors.
func Validate(v validator.Validator, req interface{}) error {
	if err := v.Validate(req); err != nil {
		return apperrors.NewValidation(err.Error(), err)
	}
	return nil
}

// CreatedBy returns the caller's user id, or nil for anonymous or malformed ids.
func CreatedBy(ctx context.Context) *primitive.ObjectID {
	meta, ok := auth.FromContext(ctx)
	if !ok {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(meta.UserID)
	if err != nil {
		return nil
	}
	return &id
}

// Publish announces a change to doc in collection.
func Publish(ctx context.Context, p messaging.Publisher, collection string, action messaging.Action, doc model.Document) {
	p.Publish(ctx, messaging.NewChangeEvent(collection, action, doc.Meta().ID.Hex()))
}

// Reference is a dependent relation that blocks a delete while live records use it.
type Reference struct {
	Exists  func(ctx context.Context) (bool, error)
	Message string
}

// CheckReferences evaluates every reference concurrently, waits for all of them, then
// reports the first blocking reference in declaration order.
func CheckReferences(ctx context.Context, refs ...Reference) error {
	found := make([]bool, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			ok, err := ref.Exists(gctx)
			if err != nil {
				return err
			}
			found[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to check references: %w", err)
	}

	for i, ref := range refs {
		if found[i] {
			return apperrors.NewConflict(ref.Message)
		}
	}
	return nil
}

// RefersTo builds an existence check for live records in repo whose field equals id.
func RefersTo[T any](repo repository.Repository[T], field string, id primitive.ObjectID, message string) Reference {
	return Reference{
		Exists: func(ctx context.Context) (bool, error) {
			return repo.Exists(ctx, store.Where().Eq(field, id))
		},
		Message: message,
	}
}

// SubjectNotFoundMessage is returned when a record points at a missing subject.
const SubjectNotFoundMessage = "Subject doesn't exist or has been deleted"

// ChapterNotFoundMessage is returned when a record points at a missing chapter.
const ChapterNotFoundMessage = "Chapter not found"

// RequireLive fails with a not-found error carrying message unless a live record with
// id exists in repo.
func RequireLive[T any](ctx context.Context, repo repository.Repository[T], id primitive.ObjectID, message string) error {
	ok, err := repo.Exists(ctx, store.Where().ID(id))
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", id.Hex(), err)
	}
	if !ok {
		return apperrors.NewNotFound(message)
	}
	return nil
}
