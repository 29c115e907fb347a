package question

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service"
	"github.com/Mdtr3002/hms-be/internal/service/servicetest"
	"github.com/Mdtr3002/hms-be/internal/store"
	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
	"github.com/Mdtr3002/hms-be/pkg/pagination"
)

func TestQuestionLifecycle(t *testing.T) {
	ctx := context.Background()
	repos := servicetest.NewRepos()
	svc := NewService(Repositories{Questions: repos.Questions, Subjects: repos.Subjects, Chapters: repos.Chapters}, service.Deps{})

	subject := &model.Subject{Name: "Anatomy"}
	require.NoError(t, repos.Subjects.Create(ctx, subject))
	chapter := &model.Chapter{Name: "Bones", Subject: subject.ID}
	require.NoError(t, repos.Chapters.Create(ctx, chapter))

	_, err := svc.Create(ctx, model.CreateQuestionRequest{Subject: subject.ID})
	assert.Equal(t, "content is required", apperrors.Message(err))

	q, err := svc.Create(ctx, model.CreateQuestionRequest{Content: "How many bones?", Subject: subject.ID, Chapter: &chapter.ID})
	require.NoError(t, err)
	assert.NotNil(t, q.Options)

	_, err = svc.Create(ctx, model.CreateQuestionRequest{Content: "Which one?", Subject: subject.ID, Options: []string{"a", "b"}})
	require.NoError(t, err)

	payload, err := svc.List(ctx, service.ListQuery{
		Filter: store.Where().Eq("chapter", chapter.ID),
		Page:   pagination.Params{PageSize: 10, PageNumber: 1, Paginate: true},
	})
	require.NoError(t, err)
	page := payload.(pagination.Page[model.Question])
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, q.ID, page.Result[0].ID)

	answer := "206"
	edited, err := svc.Edit(ctx, q.ID, model.EditQuestionRequest{Answer: &answer})
	require.NoError(t, err)
	assert.Equal(t, "206", edited.Answer)

	_, err = svc.Delete(ctx, q.ID)
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, q.ID)
	assert.Equal(t, "Question not found", apperrors.Message(err))
}
