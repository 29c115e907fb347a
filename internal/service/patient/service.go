package patient

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

const notFoundMessage = "Patient not found"

type PatientService interface {
	Create(ctx context.Context, req model.CreatePatientRequest) (*model.Patient, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.EditPatientRequest) (*model.Patient, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Patient, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID, hard bool) (*model.Patient, error)
}

type Service struct {
	repo repository.PatientRepository
	deps service.Deps
}

func NewService(repo repository.PatientRepository, deps service.Deps) *Service {
	return &Service{repo: repo, deps: deps.WithDefaults()}
}

func (s *Service) Create(ctx context.Context, req model.CreatePatientRequest) (*model.Patient, error) {
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		Dob:           *req.Dob,
		Description:   req.Description,
		MedicalRecord: req.MedicalRecord,
	}
	if patient.MedicalRecord == nil {
		patient.MedicalRecord = []model.MedicalRecord{}
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.Patients, messaging.ActionCreated, patient)
	return patient, nil
}

// Edit replaces the editable fields, keeping stored values for omitted ones.
func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.EditPatientRequest) (*model.Patient, error) {
	if err := service.Validate(s.deps.Validator, req); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id, nil)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	patient, err := s.repo.EditOne(ctx, id, req.Merge(current).Fields())
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.Patients, messaging.ActionUpdated, patient)
	return patient, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	return service.List[model.Patient](ctx, s.repo, q)
}

// Delete soft-deletes the patient, or removes it outright when hard is set.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID, hard bool) (*model.Patient, error) {
	if hard {
		patient, err := s.repo.DeleteOne(ctx, id)
		if err != nil {
			return nil, service.NotFound(err, notFoundMessage)
		}
		service.Publish(ctx, s.deps.Publisher, store.Patients, messaging.ActionPurged, patient)
		return patient, nil
	}

	patient, err := s.repo.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	service.Publish(ctx, s.deps.Publisher, store.Patients, messaging.ActionSoftDeleted, patient)
	return patient, nil
}
