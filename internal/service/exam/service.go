package exam

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

const notFoundMessage = "Exam not found"

type ExamService interface {
	Create(ctx context.Context, req model.CreateExamRequest) (*model.Exam, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.EditExamRequest) (*model.Exam, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Exam, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Exam, error)
}

type Service struct {
	exams    repository.ExamRepository
	subjects repository.SubjectRepository
	deps     service.Deps
}

func NewService(exams repository.ExamRepository, subjects repository.SubjectRepository, deps service.Deps) *Service {
	return &Service{exams: exams, subjects: subjects, deps: deps.WithDefaults()}
}

func (s *Service) Create(ctx context.Context, req model.CreateExamRequest) (*model.Exam, error) {
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}
	if err := service.RequireLive[model.Subject](ctx, s.subjects, req.Subject, service.SubjectNotFoundMessage); err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Ownership:   model.Ownership{CreatedBy: service.CreatedBy(ctx)},
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		Semester:    req.Semester,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.Exams, messaging.ActionCreated, exam)
	return exam, nil
}

func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.EditExamRequest) (*model.Exam, error) {
	exam, err := s.exams.EditOne(ctx, id, req.Fields())
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Exams, messaging.ActionUpdated, exam)
	return exam, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	return exam, nil
}

func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	return service.List[model.Exam](ctx, s.exams, q)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*model.Exam, error) {
	exam, err := s.exams.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Exams, messaging.ActionSoftDeleted, exam)
	return exam, nil
}
