package news

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

const notFoundMessage = "News not found"

type NewsService interface {
	Create(ctx context.Context, req model.NewsRequest) (*model.News, error)
	Edit(ctx context.Context, id primitive.ObjectID, req model.NewsRequest) (*model.News, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.News, error)
	List(ctx context.Context, q service.ListQuery) (interface{}, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.News, error)
}

type Service struct {
	repo repository.NewsRepository
	deps service.Deps
}

func NewService(repo repository.NewsRepository, deps service.Deps) *Service {
	return &Service{repo: repo, deps: deps.WithDefaults()}
}

// validate checks the required fields in a fixed order.
func validate(req model.NewsRequest) error {
	switch {
	case req.Title == "":
		return apperrors.NewValidation("News title is required", nil)
	case req.Content == "":
		return apperrors.NewValidation("News content is required", nil)
	case req.ThumbnailURL == "":
		return apperrors.NewValidation("News thumbnailUrl is required", nil)
	case req.Author == "":
		return apperrors.NewValidation("News author is required", nil)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req model.NewsRequest) (*model.News, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	news := &model.News{
		Ownership:    model.Ownership{CreatedBy: service.CreatedBy(ctx)},
		Title:        req.Title,
		Content:      req.Content,
		ThumbnailURL: req.ThumbnailURL,
		Author:       req.Author,
	}
	if err := s.repo.Create(ctx, news); err != nil {
		return nil, fmt.Errorf("failed to create news: %w", err)
	}

	service.Publish(ctx, s.deps.Publisher, store.News, messaging.ActionCreated, news)
	return news, nil
}

func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, req model.NewsRequest) (*model.News, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	news, err := s.repo.EditOne(ctx, id, req.Fields())
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.News, messaging.ActionUpdated, news)
	return news, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*model.News, error) {
	news, err := s.repo.GetByID(ctx, id, repository.DefaultProjection)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}
	return news, nil
}

func (s *Service) List(ctx context.Context, q service.ListQuery) (interface{}, error) {
	return service.List[model.News](ctx, s.repo, q)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*model.News, error) {
	news, err := s.repo.MarkAsDeleted(ctx, id)
	if err != nil {
		return nil, service.NotFound(err, notFoundMessage)
	}

	service.Publish(ctx, s.deps.Publisher, store.News, messaging.ActionSoftDeleted, news)
	return news, nil
}
