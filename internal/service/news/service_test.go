package news

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service"
	"github.com/Mdtr3002/hms-be/internal/service/servicetest"
	"github.com/Mdtr3002/hms-be/pkg/auth"
	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
)

func full() model.NewsRequest {
	return model.NewsRequest{Title: "Flu season", Content: "Get vaccinated", ThumbnailURL: "https://cdn/x.png", Author: "Admin"}
}

func TestValidateOrder(t *testing.T) {
	svc := NewService(servicetest.NewRepos().News, service.Deps{})
	ctx := context.Background()

	cases := []struct {
		mutate func(*model.NewsRequest)
		want   string
	}{
		{func(r *model.NewsRequest) { *r = model.NewsRequest{} }, "News title is required"},
		{func(r *model.NewsRequest) { r.Content = ""; r.Author = "" }, "News content is required"},
		{func(r *model.NewsRequest) { r.ThumbnailURL = "" }, "News thumbnailUrl is required"},
		{func(r *model.NewsRequest) { r.Author = "" }, "News author is required"},
	}
	for _, tc := range cases {
		req := full()
		tc.mutate(&req)
		_, err := svc.Create(ctx, req)
		assert.Equal(t, tc.want, apperrors.Message(err))
	}
}

func TestCreateEditDelete(t *testing.T) {
	rec := &servicetest.Recorder{}
	svc := NewService(servicetest.NewRepos().News, service.Deps{Publisher: rec})
	user := primitive.NewObjectID()
	ctx := auth.WithTokenMeta(context.Background(), &auth.TokenMeta{UserID: user.Hex()})

	created, err := svc.Create(ctx, full())
	require.NoError(t, err)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, user, *created.CreatedBy)

	req := full()
	req.Title = "Flu season update"
	edited, err := svc.Edit(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Flu season update", edited.Title)

	req.Author = ""
	_, err = svc.Edit(ctx, created.ID, req)
	assert.Equal(t, "News author is required", apperrors.Message(err))

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, created.ID)
	assert.Equal(t, "News not found", apperrors.Message(err))
	_, err = svc.Edit(ctx, created.ID, full())
	assert.Equal(t, "News not found", apperrors.Message(err))

	assert.Equal(t, []string{"news.created", "news.updated", "news.deleted"}, rec.Types())
}
