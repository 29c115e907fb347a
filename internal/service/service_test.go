package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/repository/document"
	"github.com/Mdtr3002/hms-be/internal/store"
	"github.com/Mdtr3002/hms-be/internal/store/memory"
	"github.com/Mdtr3002/hms-be/pkg/auth"
	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
	"github.com/Mdtr3002/hms-be/pkg/pagination"
)

func check(found bool, delay time.Duration, message string) Reference {
	return Reference{
		Exists: func(ctx context.Context) (bool, error) {
			time.Sleep(delay)
			return found, nil
		},
		Message: message,
	}
}

func TestCheckReferencesReportsFirstInOrder(t *testing.T) {
	// the second check finishes first, the first one still wins
	err := CheckReferences(context.Background(),
		check(false, 0, "a"),
		check(true, 20*time.Millisecond, "b"),
		check(true, 0, "c"),
	)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, "b", apperrors.Message(err))

	assert.NoError(t, CheckReferences(context.Background(), check(false, 0, "a"), check(false, 0, "b")))
}

func TestCheckReferencesAwaitsAll(t *testing.T) {
	boom := errors.New("boom")
	err := CheckReferences(context.Background(),
		check(true, 0, "a"),
		Reference{Exists: func(context.Context) (bool, error) { return false, boom }},
	)
	assert.ErrorIs(t, err, boom)
}

func TestListShapes(t *testing.T) {
	ctx := context.Background()
	repo := document.NewNewsRepository(memory.New())
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.News{Title: "t"}))
	}

	payload, err := List[model.News](ctx, repo, ListQuery{Filter: store.Where(), Page: pagination.Params{PageSize: 2, PageNumber: 1, Paginate: true}})
	require.NoError(t, err)
	page, ok := payload.(pagination.Page[model.News])
	require.True(t, ok)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int64(2), page.PageCount)
	assert.Equal(t, 2, page.PageSize)
	assert.Len(t, page.Result, 2)

	payload, err = List[model.News](ctx, repo, ListQuery{Filter: store.Where(), Page: pagination.Params{PageSize: 2, PageNumber: 1}})
	require.NoError(t, err)
	all, ok := payload.(pagination.All[model.News])
	require.True(t, ok)
	assert.Equal(t, 3, all.Total)
	assert.Len(t, all.Result, 3)
}

func TestMap(t *testing.T) {
	double := func(in []int) ([]int, error) {
		out := make([]int, len(in))
		for i, v := range in {
			out[i] = v * 2
		}
		return out, nil
	}

	got, err := Map(pagination.Page[int]{Total: 2, PageCount: 1, PageSize: 10, Result: []int{1, 2}}, double)
	require.NoError(t, err)
	assert.Equal(t, pagination.Page[int]{Total: 2, PageCount: 1, PageSize: 10, Result: []int{2, 4}}, got)

	got, err = Map(pagination.NewAll([]int{3}), double)
	require.NoError(t, err)
	assert.Equal(t, pagination.All[int]{Total: 1, Result: []int{6}}, got)

	_, err = Map("nope", double)
	assert.Error(t, err)
}

func TestCreatedBy(t *testing.T) {
	assert.Nil(t, CreatedBy(context.Background()))

	id := primitive.NewObjectID()
	ctx := auth.WithTokenMeta(context.Background(), &auth.TokenMeta{UserID: id.Hex()})
	require.NotNil(t, CreatedBy(ctx))
	assert.Equal(t, id, *CreatedBy(ctx))

	ctx = auth.WithTokenMeta(context.Background(), &auth.TokenMeta{UserID: "not-an-id"})
	assert.Nil(t, CreatedBy(ctx))
}
