package event

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
	notFoundMessage     = "Event not found"
	invalidRangeMessage = "endedAt must not be before startedAt"
)

type EventService interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.EditEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
}

type Service struct {
	events   repository.EventRepository
	subjects repository.SubjectRepository
	deps     service.Deps
}

func NewService(events repository.EventRepository, subjects repository.SubjectRepository, deps service.Deps) *Service {
	return &Service{events: events, subjects: subjects, deps: deps.WithDefaults()}
}

func (s *Service) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}
	if req.Subject != nil {
		if err := service.RequireLive[model.Subject](ctx, s.subjects, *req.Subject, service.SubjectNotFoundMessage); err != nil {
			return nil, err
		}
	}

	event := &model.Event{
		Ownership:   model.Ownership{CreatedBy: service.CreatedBy(ctx)},
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.Events, messaging.ActionCreated, event)
	return event, nil
}

// Edit updates the event, keeping startedAt <= endedAt across the stored and new values.
func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.EditEventRequest) (*model.Event, error) {
	if req.StartedAt != nil || req.EndedAt != nil {
		current, err := s.events.GetByID(ctx, id, nil)
		if err != nil {
			return nil, service.NotFound(err, notFoundMessage)
		}
		start, end := current.StartedAt, current.EndedAt
		if req.StartedAt != nil {
			start = *req.StartedAt
		}
		if req.EndedAt != nil {
			end = *req.EndedAt
		}
		if end < start {
			return nil, apperrors.NewValidation(invalidRangeMessage, nil)
		}
	}

	event, err := s.events.EditOne(ctx, id, req.Fields())
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Events, messaging.ActionUpdated, event)
	return event, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	return event, nil
}

func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	return service.List[model.Event](ctx, s.events, q)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	event, err := s.events.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Events, messaging.ActionSoftDeleted, event)
	return event, nil
}
