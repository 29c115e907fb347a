package staff

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

const notFoundMessage = "Staff not found"

type StaffService interface {
	Create(ctx context.Context, req model.CreateStaffRequest) (*model.Staff, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.EditStaffRequest) (*model.Staff, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Staff, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID, hard bool) (*model.Staff, error)
}

type Service struct {
	repo repository.StaffRepository
	deps service.Deps
}

func NewService(repo repository.StaffRepository, deps service.Deps) *Service {
	return &Service{repo: repo, deps: deps.WithDefaults()}
}

// Create stores a plain staff member, a Doctor or a Nurse depending on req.Role.
func (s *Service) Create(ctx context.Context, req model.CreateStaffRequest) (*model.Staff, error) {
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}
	if _, err := model.NewStaff(req); err != nil {
		return nil, apperrors.NewValidation(err.Error(), err)
	}

	staff, err := s.repo.CreateFromRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.Staffs, messaging.ActionCreated, staff)
	return staff, nil
}

// Edit applies the allowed fields only. The variant never changes.
func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.EditStaffRequest) (*model.Staff, error) {
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id, nil)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	set, err := req.Fields(current)
	if err != nil {
		return nil, apperrors.NewValidation(err.Error(), err)
	}
	if len(set) == 0 {
		return current, nil
	}

	staff, err := s.repo.EditOne(ctx, id, set)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Staffs, messaging.ActionUpdated, staff)
	return staff, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Staff, error) {
	staff, err := s.repo.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	return staff, nil
}

func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	return service.List[model.Staff](ctx, s.repo, q)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID, hard bool) (*model.Staff, error) {
	if hard {
		staff, err := s.repo.DeleteOne(ctx, id)
		if err != nil {
			return nil, service.NotFound(err, notFoundMessage)
		}
		service.Publish(ctx, s.deps.Publisher, store.Staffs, messaging.ActionPurged, staff)
		return staff, nil
	}

	staff, err := s.repo.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	service.Publish(ctx, s.deps.Publisher, store.Staffs, messaging.ActionSoftDeleted, staff)
	return staff, nil
}
