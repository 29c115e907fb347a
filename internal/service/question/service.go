package question

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/repository"
	"github.com/Mdtr3002/hms-be/internal/service"
	"github.com/Mdtr3002/hms-be/internal/store"
	"github.com/Mdtr3002/hms-be/pkg/messaging"
)

const notFoundMessage = "Question not found"

type QuestionService interface {
	Create(ctx context.Context, req model.CreateQuestionRequest) (*model.Question, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.EditQuestionRequest) (*model.Question, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Question, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Question, error)
}

type Repositories struct {
	Questions repository.QuestionRepository
	Subjects  repository.SubjectRepository
	Chapters  repository.ChapterRepository
}

type Service struct {
	repos Repositories
	deps  service.Deps
}

func NewService(repos Repositories, deps service.Deps) *Service {
	return &Service{repos: repos, deps: deps.WithDefaults()}
}

func (s *Service) Create(ctx context.Context, req model.CreateQuestionRequest) (*model.Question, error) {
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

	question := &model.Question{
		Ownership:   model.Ownership{CreatedBy: service.CreatedBy(ctx)},
		Content:     req.Content,
		Options:     req.Options,
		Answer:      req.Answer,
		Explanation: req.Explanation,
		Subject:     req.Subject,
		Chapter:     req.Chapter,
	}
	if question.Options == nil {
		question.Options = []string{}
	}
	if err := s.repos.Questions.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.Questions, messaging.ActionCreated, question)
	return question, nil
}

func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.EditQuestionRequest) (*model.Question, error) {
	question, err := s.repos.Questions.EditOne(ctx, id, req.Fields())
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Questions, messaging.ActionUpdated, question)
	return question, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Question, error) {
	question, err := s.repos.Questions.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	return question, nil
}

func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	return service.List[model.Question](ctx, s.repos.Questions, q)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*model.Question, error) {
	question, err := s.repos.Questions.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Questions, messaging.ActionSoftDeleted, question)
	return question, nil
}
