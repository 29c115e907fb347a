package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service"
	"github.com/Mdtr3002/hms-be/internal/service/servicetest"
	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
)

func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()
	repos := servicetest.NewRepos()
	svc := NewService(repos.Events, repos.Subjects, service.Deps{})

	_, err := svc.Create(ctx, model.CreateEventRequest{Name: "Open day", StartedAt: 10, EndedAt: 5})
	assert.Equal(t, "endedAt must not be before StartedAt", apperrors.Message(err))

	missing := primitive.NewObjectID()
	_, err = svc.Create(ctx, model.CreateEventRequest{Name: "Open day", Subject: &missing, StartedAt: 1, EndedAt: 2})
	assert.Equal(t, "Subject doesn't exist or has been deleted", apperrors.Message(err))

	event, err := svc.Create(ctx, model.CreateEventRequest{Name: "Open day", StartedAt: 100, EndedAt: 200})
	require.NoError(t, err)

	end := int64(50)
	_, err = svc.Edit(ctx, event.ID, model.EditEventRequest{EndedAt: &end})
	assert.Equal(t, "endedAt must not be before startedAt", apperrors.Message(err))

	end = 300
	edited, err := svc.Edit(ctx, event.ID, model.EditEventRequest{EndedAt: &end})
	require.NoError(t, err)
	assert.Equal(t, int64(300), edited.EndedAt)
	assert.Equal(t, int64(100), edited.StartedAt)

	_, err = svc.Delete(ctx, event.ID)
	require.NoError(t, err)
	_, err = svc.Edit(ctx, event.ID, model.EditEventRequest{EndedAt: &end})
	assert.Equal(t, "Event not found", apperrors.Message(err))
}
