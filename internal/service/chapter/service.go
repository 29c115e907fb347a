package chapter

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
	notFoundMessage        = "Chapter not found"
	requestedNotFound      = "The requested chapter is not found"
	subjectNotFoundMessage = "Subject doesn't exist or has been deleted"
	missingNameMessage     = "Missing 'name' field"

	QuestionsRemainMessage = "This chapter is referenced by some question. Please delete them first"
	QuizzesRemainMessage   = "This chapter is referenced by some quiz. Please delete them first"
)

type ChapterService interface {
	Create(ctx context.Context, req model.CreateChapterRequest) (*model.Chapter, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.EditSubjectRequest) (*model.Chapter, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.PopulatedChapter, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Chapter, error)
}

type Repositories struct {
	Chapters  repository.ChapterRepository
	Subjects  repository.SubjectRepository
	Questions repository.QuestionRepository
	Quizzes   repository.QuizRepository
}

type Service struct {
	repos Repositories
	deps  service.Deps
}

func NewService(repos Repositories, deps service.Deps) *Service {
	return &Service{repos: repos, deps: deps.WithDefaults()}
}

func (s *Service) Create(ctx context.Context, req model.CreateChapterRequest) (*model.Chapter, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidation(missingNameMessage, nil)
	}
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}

	exists, err := s.repos.Subjects.Exists(ctx, store.Where().ID(req.Subject))
	if err != nil {
		return nil, fmt.Errorf("failed to look up subject: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound(subjectNotFoundMessage)
	}

	chapter := &model.Chapter{
		Ownership:   model.Ownership{CreatedBy: service.CreatedBy(ctx)},
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
	}
	if err := s.repos.Chapters.Create(ctx, chapter); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.Chapters, messaging.ActionCreated, chapter)
	return chapter, nil
}

func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.EditSubjectRequest) (*model.Chapter, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, apperrors.NewValidation(missingNameMessage, nil)
	}

	chapter, err := s.repos.Chapters.EditOne(ctx, id, req.Fields())
	if err != nil {
		return nil, service.NotFound(err, requestedNotFound)
	}

	service.Publish(ctx, s.deps.Publisher, store.Chapters, messaging.ActionUpdated, chapter)
	return chapter, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.PopulatedChapter, error) {
	chapter, err := s.repos.Chapters.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	populated, err := Populate(ctx, s.repos.Subjects, []model.Chapter{*chapter})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// List returns chapters with their subject expanded.
func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	payload, err := service.List[model.Chapter](ctx, s.repos.Chapters, q)
	if err != nil {
		return nil, err
	}
	return service.Map(payload, func(chapters []model.Chapter) ([]model.PopulatedChapter, error) {
		return Populate(ctx, s.repos.Subjects, chapters)
	})
}

// Delete soft-deletes the chapter once no live question or quiz refers to it.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*model.Chapter, error) {
	exists, err := s.repos.Chapters.Exists(ctx, store.Where().ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to look up chapter: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound(requestedNotFound)
	}

	err = service.CheckReferences(ctx,
		service.RefersTo[model.Question](s.repos.Questions, "chapter", id, QuestionsRemainMessage),
		service.RefersTo[model.Quiz](s.repos.Quizzes, "chapter", id, QuizzesRemainMessage),
	)
	if err != nil {
		return nil, err
	}

	chapter, err := s.repos.Chapters.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, requestedNotFound)
	}

	service.Publish(ctx, s.deps.Publisher, store.Chapters, messaging.ActionSoftDeleted, chapter)
	return chapter, nil
}

// Populate expands the subject of every chapter with a single lookup. Chapters whose
// subject is gone carry a nil subject.
func Populate(ctx context.Context, subjects repository.SubjectRepository, chapters []model.Chapter) ([]model.PopulatedChapter, error) {
	out := make([]model.PopulatedChapter, len(chapters))
	if len(chapters) == 0 {
		return out, nil
	}

	ids := make([]interface{}, 0, len(chapters))
	for _, c := range chapters {
		ids = append(ids, c.Subject)
	}

	found, err := subjects.Get(ctx, store.Where().In("_id", ids...), repository.DefaultProjection)
	if err != nil {
		return nil, fmt.Errorf("failed to populate subjects: %w", err)
	}
	byID := make(map[primitive.ObjectID]*model.Subject, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	for i, c := range chapters {
		out[i] = model.PopulatedChapter{Chapter: c, Subject: byID[c.Subject]}
	}
	return out, nil
}
