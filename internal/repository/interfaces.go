package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/store"
	"github.com/Mdtr3002/hms-be/pkg/pagination"
)

// ErrNotFound is returned when no live record matches.
var ErrNotFound = store.ErrNotFound

// Projection lists fields left out of returned records.
type Projection []string

// DefaultProjection hides the legacy version key stored on older documents.
var DefaultProjection = Projection{"__v"}

// All repository interfaces in one file
type (
	// Repository handles live-record operations on one collection. Every read and
	// update is restricted to records without deletedAt, except DeleteOne and
	// ListDeleted.
	Repository[T any] interface {
		Create(ctx context.Context, doc *T) error
		EditOne(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*T, error)
		GetByID(ctx context.Context, id primitive.ObjectID, projection Projection) (*T, error)
		GetOne(ctx context.Context, filter store.Filter, projection Projection) (*T, error)
		Get(ctx context.Context, filter store.Filter, projection Projection) ([]T, error)
		GetPaginated(ctx context.Context, filter store.Filter, projection Projection, page pagination.Params) (int64, []T, error)
		Exists(ctx context.Context, filter store.Filter) (bool, error)
		MarkAsDeleted(ctx context.Context, id primitive.ObjectID) (*T, error)
		DeleteOne(ctx context.Context, id primitive.ObjectID) (*T, error)
		ListDeleted(ctx context.Context) ([]T, error)
	}

	// PatientRepository handles patient records
	PatientRepository interface {
		Repository[model.Patient]
	}

	// StaffRepository handles staff records of every variant
	StaffRepository interface {
		Repository[model.Staff]
		// CreateFromRequest builds the Doctor, Nurse or plain variant from req.Role.
		CreateFromRequest(ctx context.Context, req model.CreateStaffRequest) (*model.Staff, error)
	}

	SubjectRepository interface {
		Repository[model.Subject]
	}

	ChapterRepository interface {
		Repository[model.Chapter]
	}

	QuestionRepository interface {
		Repository[model.Question]
	}

	QuizRepository interface {
		Repository[model.Quiz]
	}

	ExamRepository interface {
		Repository[model.Exam]
	}

	EventRepository interface {
		Repository[model.Event]
	}

	NewsRepository interface {
		Repository[model.News]
	}
)

// Purgeable is the subset of a repository the purge worker needs.
type Purgeable interface {
	Name() string
	// PurgeDeleted hard-deletes records soft-deleted before the cutoff.
	PurgeDeleted(ctx context.Context, before time.Time) (int, error)
}
