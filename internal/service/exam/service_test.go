package exam

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

func TestExamLifecycle(t *testing.T) {
	ctx := context.Background()
	repos := servicetest.NewRepos()
	svc := NewService(repos.Exams, repos.Subjects, service.Deps{})

	subject := &model.Subject{Name: "Anatomy"}
	require.NoError(t, repos.Subjects.Create(ctx, subject))

	_, err := svc.Create(ctx, model.CreateExamRequest{Subject: subject.ID})
	assert.Equal(t, "name is required", apperrors.Message(err))

	_, err = svc.Create(ctx, model.CreateExamRequest{Name: "Final", Subject: primitive.NewObjectID()})
	assert.Equal(t, "Subject doesn't exist or has been deleted", apperrors.Message(err))

	exam, err := svc.Create(ctx, model.CreateExamRequest{Name: "Final", Subject: subject.ID, Semester: "2023-1"})
	require.NoError(t, err)

	semester := "2023-2"
	edited, err := svc.Edit(ctx, exam.ID, model.EditExamRequest{Semester: &semester})
	require.NoError(t, err)
	assert.Equal(t, "2023-2", edited.Semester)
	assert.Equal(t, "Final", edited.Name)

	_, err = svc.Delete(ctx, exam.ID)
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, exam.ID)
	assert.Equal(t, "Exam not found", apperrors.Message(err))
}
