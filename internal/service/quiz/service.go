package quiz

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
	notFoundMessage         = "Quiz not found"
	questionNotFoundMessage = "Question not found"
)

type QuizService interface {
	Create(ctx context.Context, req model.CreateQuizRequest) (*model.Quiz, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.EditQuizRequest) (*model.Quiz, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.PopulatedQuiz, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Quiz, error)
}

type Repositories struct {
	Quizzes   repository.QuizRepository
	Subjects  repository.SubjectRepository
	Chapters  repository.ChapterRepository
	Questions repository.QuestionRepository
}

type Service struct {
	repos Repositories
	deps  service.Deps
}

func NewService(repos Repositories, deps service.Deps) *Service {
	return &Service{repos: repos, deps: deps.WithDefaults()}
}

func (s *Service) Create(ctx context.Context, req model.CreateQuizRequest) (*model.Quiz, error) {
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}
	if err := service.RequireLive[model.Subject](ctx, s.repos.Subjects, req.Subject, service.SubjectNotFoundMessage); err != nil {
		return nil, err
	}
	if req.Chapter != nil {
		if err := service.RequireLive[model.Chapter](ctx, s.repos.Chapters, *req.Chapter, service.ChapterNotFoundMessage); err != nil {
			return nil, err
		}
	}
	if err := s.requireQuestions(ctx, req.Questions); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Ownership:   model.Ownership{CreatedBy: service.CreatedBy(ctx)},
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		Chapter:     req.Chapter,
		Questions:   req.Questions,
		Duration:    req.Duration,
	}
	if quiz.Questions == nil {
		quiz.Questions = []primitive.ObjectID{}
	}
	if err := s.repos.Quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.Quizzes, messaging.ActionCreated, quiz)
	return quiz, nil
}

func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.EditQuizRequest) (*model.Quiz, error) {
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}
	if req.Questions != nil {
		if err := s.requireQuestions(ctx, *req.Questions); err != nil {
			return nil, err
		}
	}

	quiz, err := s.repos.Quizzes.EditOne(ctx, id, req.Fields())
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Quizzes, messaging.ActionUpdated, quiz)
	return quiz, nil
}

// requireQuestions fails unless every id names a live question.
func (s *Service) requireQuestions(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	unique := make(map[primitive.ObjectID]struct{}, len(ids))
	values := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		if _, ok := unique[id]; ok {
			continue
		}
		unique[id] = struct{}{}
		values = append(values, id)
	}

	found, err := s.repos.Questions.Get(ctx, store.Where().In("_id", values...), nil)
	if err != nil {
		return fmt.Errorf("failed to look up questions: %w", err)
	}
	if len(found) != len(unique) {
		return apperrors.NewNotFound(questionNotFoundMessage)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.PopulatedQuiz, error) {
	quiz, err := s.repos.Quizzes.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	populated, err := Populate(ctx, s.repos.Chapters, []model.Quiz{*quiz})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// List returns quizzes with their chapter expanded.
func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	payload, err := service.List[model.Quiz](ctx, s.repos.Quizzes, q)
	if err != nil {
		return nil, err
	}
	return service.Map(payload, func(quizzes []model.Quiz) ([]model.PopulatedQuiz, error) {
		return Populate(ctx, s.repos.Chapters, quizzes)
	})
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*model.Quiz, error) {
	quiz, err := s.repos.Quizzes.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Quizzes, messaging.ActionSoftDeleted, quiz)
	return quiz, nil
}

// Populate expands the chapter of every quiz that has one.
func Populate(ctx context.Context, chapters repository.ChapterRepository, quizzes []model.Quiz) ([]model.PopulatedQuiz, error) {
	out := make([]model.PopulatedQuiz, len(quizzes))

	ids := make([]interface{}, 0, len(quizzes))
	for _, q := range quizzes {
		if q.Chapter != nil {
			ids = append(ids, *q.Chapter)
		}
	}

	byID := make(map[primitive.ObjectID]*model.Chapter)
	if len(ids) > 0 {
		found, err := chapters.Get(ctx, store.Where().In("_id", ids...), repository.DefaultProjection)
		if err != nil {
			return nil, fmt.Errorf("failed to populate chapters: %w", err)
		}
		for i := range found {
			byID[found[i].ID] = &found[i]
		}
	}

	for i, q := range quizzes {
		out[i] = model.PopulatedQuiz{Quiz: q}
		if q.Chapter != nil {
			out[i].Chapter = byID[*q.Chapter]
		}
	}
	return out, nil
}
