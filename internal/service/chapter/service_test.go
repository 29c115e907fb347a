package chapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service"
	"github.com/Mdtr3002/hms-be/internal/service/servicetest"
	"github.com/Mdtr3002/hms-be/internal/store"
	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
	"github.com/Mdtr3002/hms-be/pkg/pagination"
)

func setup(t *testing.T) (*Service, *servicetest.Repos, *model.Subject) {
	t.Helper()
	repos := servicetest.NewRepos()
	svc := NewService(Repositories{
		Chapters:  repos.Chapters,
		Subjects:  repos.Subjects,
		Questions: repos.Questions,
		Quizzes:   repos.Quizzes,
	}, service.Deps{})

	subject := &model.Subject{Name: "Anatomy"}
	require.NoError(t, repos.Subjects.Create(context.Background(), subject))
	return svc, repos, subject
}

func TestCreateRequiresLiveSubject(t *testing.T) {
	ctx := context.Background()
	svc, _, subject := setup(t)

	_, err := svc.Create(ctx, model.CreateChapterRequest{Subject: subject.ID})
	assert.Equal(t, "Missing 'name' field", apperrors.Message(err))

	_, err = svc.Create(ctx, model.CreateChapterRequest{Name: "Bones", Subject: primitive.NewObjectID()})
	assert.Equal(t, "Subject doesn't exist or has been deleted", apperrors.Message(err))

	chapter, err := svc.Create(ctx, model.CreateChapterRequest{Name: "Bones", Subject: subject.ID})
	require.NoError(t, err)
	assert.Equal(t, subject.ID, chapter.Subject)
}

func TestGetAndListPopulateSubject(t *testing.T) {
	ctx := context.Background()
	svc, _, subject := setup(t)

	chapter, err := svc.Create(ctx, model.CreateChapterRequest{Name: "Bones", Subject: subject.ID})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, chapter.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Subject)
	assert.Equal(t, "Anatomy", got.Subject.Name)

	payload, err := svc.List(ctx, service.ListQuery{
		Filter: store.Where().Eq("subject", subject.ID),
		Page:   pagination.Params{PageSize: 10, PageNumber: 1, Paginate: true},
	})
	require.NoError(t, err)
	page, ok := payload.(pagination.Page[model.PopulatedChapter])
	require.True(t, ok)
	require.Len(t, page.Result, 1)
	assert.Equal(t, subject.ID, page.Result[0].Subject.ID)
}

func TestDeleteBlockedByQuestion(t *testing.T) {
	ctx := context.Background()
	svc, repos, subject := setup(t)

	chapter, err := svc.Create(ctx, model.CreateChapterRequest{Name: "Bones", Subject: subject.ID})
	require.NoError(t, err)

	question := &model.Question{Content: "How many?", Subject: subject.ID, Chapter: &chapter.ID}
	require.NoError(t, repos.Questions.Create(ctx, question))
	require.NoError(t, repos.Quizzes.Create(ctx, &model.Quiz{Name: "q", Subject: subject.ID, Chapter: &chapter.ID}))

	_, err = svc.Delete(ctx, chapter.ID)
	assert.Equal(t, QuestionsRemainMessage, apperrors.Message(err))

	_, err = repos.Questions.MarkAsDeleted(ctx, question.ID)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, chapter.ID)
	assert.Equal(t, QuizzesRemainMessage, apperrors.Message(err))
}

func TestEditAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)
	name := "x"

	_, err := svc.Edit(ctx, primitive.NewObjectID(), model.EditSubjectRequest{Name: &name})
	assert.Equal(t, "The requested chapter is not found", apperrors.Message(err))

	_, err = svc.Delete(ctx, primitive.NewObjectID())
	assert.Equal(t, "The requested chapter is not found", apperrors.Message(err))

	_, err = svc.GetByID(ctx, primitive.NewObjectID())
	assert.Equal(t, "Chapter not found", apperrors.Message(err))
}
