package quiz

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

type fixture struct {
	svc      *Service
	repos    *servicetest.Repos
	subject  *model.Subject
	chapter  *model.Chapter
	question *model.Question
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos := servicetest.NewRepos()

	subject := &model.Subject{Name: "Pharmacology"}
	require.NoError(t, repos.Subjects.Create(ctx, subject))
	chapter := &model.Chapter{Name: "Dosage", Subject: subject.ID}
	require.NoError(t, repos.Chapters.Create(ctx, chapter))
	question := &model.Question{Content: "mg?", Subject: subject.ID}
	require.NoError(t, repos.Questions.Create(ctx, question))

	svc := NewService(Repositories{
		Quizzes:   repos.Quizzes,
		Subjects:  repos.Subjects,
		Chapters:  repos.Chapters,
		Questions: repos.Questions,
	}, service.Deps{})
	return fixture{svc: svc, repos: repos, subject: subject, chapter: chapter, question: question}
}

func TestCreatePopulatesChapter(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	quiz, err := f.svc.Create(ctx, model.CreateQuizRequest{
		Name:      "Week 1",
		Subject:   f.subject.ID,
		Chapter:   &f.chapter.ID,
		Questions: []primitive.ObjectID{f.question.ID, f.question.ID},
		Duration:  600,
	})
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Chapter)
	assert.Equal(t, "Dosage", got.Chapter.Name)

	payload, err := f.svc.List(ctx, service.ListQuery{Filter: store.Where(), Page: pagination.Params{PageSize: 10, PageNumber: 1}})
	require.NoError(t, err)
	all, ok := payload.(pagination.All[model.PopulatedQuiz])
	require.True(t, ok)
	require.Len(t, all.Result, 1)
	assert.Equal(t, f.chapter.ID, all.Result[0].Chapter.ID)
}

func TestCreateChecksReferences(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.Create(ctx, model.CreateQuizRequest{Name: "x", Subject: primitive.NewObjectID()})
	assert.Equal(t, "Subject doesn't exist or has been deleted", apperrors.Message(err))

	missing := primitive.NewObjectID()
	_, err = f.svc.Create(ctx, model.CreateQuizRequest{Name: "x", Subject: f.subject.ID, Chapter: &missing})
	assert.Equal(t, "Chapter not found", apperrors.Message(err))

	_, err = f.svc.Create(ctx, model.CreateQuizRequest{Name: "x", Subject: f.subject.ID, Questions: []primitive.ObjectID{missing}})
	assert.Equal(t, "Question not found", apperrors.Message(err))

	_, err = f.svc.Create(ctx, model.CreateQuizRequest{Name: "x", Subject: f.subject.ID, Duration: -1})
	assert.Equal(t, "duration must be at least 0", apperrors.Message(err))
}

func TestQuizWithoutChapter(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	quiz, err := f.svc.Create(ctx, model.CreateQuizRequest{Name: "Loose", Subject: f.subject.ID})
	require.NoError(t, err)
	assert.NotNil(t, quiz.Questions)

	got, err := f.svc.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Chapter)

	_, err = f.svc.Delete(ctx, quiz.ID)
	require.NoError(t, err)
	_, err = f.svc.Delete(ctx, quiz.ID)
	assert.Equal(t, "Quiz not found", apperrors.Message(err))
}
