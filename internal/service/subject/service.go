package subject

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/repository"
	"github.com/Mdtr3002/hms-be/internal/service"
	"github.com/Mdtr3002/hms-be/internal/store"
	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
	"github.com/Mdtr3002/hms-be/pkg/messaging"
)

const (
	notFoundMessage    = "Subject doesn't exist or has been deleted"
	missingNameMessage = "Missing 'name' field"
)

// Messages returned while live records still reference the subject.
const (
	ChaptersRemainMessage  = "There are still chapters that belong to this subject. Please delete them first"
	ExamsRemainMessage     = "There are still previous exams that belong to this subject. Please delete them first"
	QuizzesRemainMessage   = "There are still quiz that belong to this subject. Please delete them first"
	QuestionsRemainMessage = "There are still question that belong to this subject. Please delete them first"
	EventsRemainMessage    = "There are still events that belong to this subject. Please delete them first"
)

type SubjectService interface {
	Create(ctx context.Context, req model.CreateSubjectRequest) (*model.Subject, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.EditSubjectRequest) (*model.Subject, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Subject, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Subject, error)
}

// Repositories are the collections a subject delete has to check.
type Repositories struct {
	Subjects  repository.SubjectRepository
	Chapters  repository.ChapterRepository
	Exams     repository.ExamRepository
	Quizzes   repository.QuizRepository
	Questions repository.QuestionRepository
	Events    repository.EventRepository
}

type Service struct {
	repos Repositories
	deps  service.Deps
}

func NewService(repos Repositories, deps service.Deps) *Service {
	return &Service{repos: repos, deps: deps.WithDefaults()}
}

func (s *Service) Create(ctx context.Context, req model.CreateSubjectRequest) (*model.Subject, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidation(missingNameMessage, nil)
	}

	subject := &model.Subject{
		Ownership:   model.Ownership{CreatedBy: service.CreatedBy(ctx)},
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repos.Subjects.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.Subjects, messaging.ActionCreated, subject)
	return subject, nil
}

func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.EditSubjectRequest) (*model.Subject, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, apperrors.NewValidation(missingNameMessage, nil)
	}

	subject, err := s.repos.Subjects.EditOne(ctx, id, req.Fields())
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Subjects, messaging.ActionUpdated, subject)
	return subject, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Subject, error) {
	subject, err := s.repos.Subjects.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	return subject, nil
}

func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	return service.List[model.Subject](ctx, s.repos.Subjects, q)
}

// Delete soft-deletes the subject once nothing live refers to it.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*model.Subject, error) {
	exists, err := s.repos.Subjects.Exists(ctx, store.Where().ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to look up subject: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound(notFoundMessage)
	}

	err = service.CheckReferences(ctx,
		service.RefersTo[model.Chapter](s.repos.Chapters, "subject", id, ChaptersRemainMessage),
		service.RefersTo[model.Exam](s.repos.Exams, "subject", id, ExamsRemainMessage),
		service.RefersTo[model.Quiz](s.repos.Quizzes, "subject", id, QuizzesRemainMessage),
		service.RefersTo[model.Question](s.repos.Questions, "subject", id, QuestionsRemainMessage),
		service.RefersTo[model.Event](s.repos.Events, "subject", id, EventsRemainMessage),
	)
	if err != nil {
		return nil, err
	}

	subject, err := s.repos.Subjects.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Subjects, messaging.ActionSoftDeleted, subject)
	return subject, nil
}
