package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/store"
)

type item struct {
	ID        primitive.ObjectID   `json:"_id"`
	Name      string               `json:"name"`
	Tags      []string             `json:"tags,omitempty"`
	Owner     primitive.ObjectID   `json:"owner"`
	Rank      int                  `json:"rank"`
	CreatedAt time.Time            `json:"createdAt"`
	DeletedAt *time.Time           `json:"deletedAt,omitempty"`
	Refs      []primitive.ObjectID `json:"refs,omitempty"`
}

func seed(t *testing.T, c store.Collection, items ...item) {
	t.Helper()
	for _, it := range items {
		require.NoError(t, c.Insert(context.Background(), it))
	}
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")
	owner := primitive.NewObjectID()
	deleted := time.Now()
	ref := primitive.NewObjectID()

	seed(t, c,
		item{ID: primitive.NewObjectID(), Name: "Anatomy", Owner: owner, Refs: []primitive.ObjectID{ref}},
		item{ID: primitive.NewObjectID(), Name: "Biology", Owner: owner},
		item{ID: primitive.NewObjectID(), Name: "anatomy II", DeletedAt: &deleted},
	)

	tests := []struct {
		name   string
		filter store.Filter
		want   []string
	}{
		{"all", store.Where(), []string{"Anatomy", "Biology", "anatomy II"}},
		{"regex is case sensitive", store.Where().Regex("name", "Ana"), []string{"Anatomy"}},
		{"live only", store.Where().NotExists("deletedAt"), []string{"Anatomy", "Biology"}},
		{"deleted only", store.Where().Exists("deletedAt"), []string{"anatomy II"}},
		{"object id eq", store.Where().Eq("owner", owner), []string{"Anatomy", "Biology"}},
		{"array contains", store.Where().Eq("refs", ref), []string{"Anatomy"}},
		{"in", store.Where().In("name", "Biology", "anatomy II"), []string{"Biology", "anatomy II"}},
		{"deleted before later cutoff", store.Where().Before("deletedAt", deleted.Add(time.Minute)), []string{"anatomy II"}},
		{"deleted before earlier cutoff", store.Where().Before("deletedAt", deleted.Add(-time.Minute)), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []item
			require.NoError(t, c.Find(ctx, tt.filter, store.FindOptions{}, &got))

			names := make([]string, 0, len(got))
			for _, it := range got {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestInvalidRegex(t *testing.T) {
	c := New().Collection("items")
	seed(t, c, item{ID: primitive.NewObjectID(), Name: "x"})

	var got []item
	err := c.Find(context.Background(), store.Where().Regex("name", "("), store.FindOptions{}, &got)
	assert.Error(t, err)
}

func TestSortSkipLimitOmit(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seed(t, c, item{ID: primitive.NewObjectID(), Name: string(rune('a' + i)), Rank: i, CreatedAt: base.Add(time.Duration(i) * time.Millisecond)})
	}

	var got []item
	require.NoError(t, c.Find(ctx, store.Where(), store.FindOptions{
		Sort:  []store.SortField{{Field: "createdAt", Desc: true}},
		Skip:  1,
		Limit: 2,
		Omit:  []string{"rank"},
	}, &got))

	require.Len(t, got, 2)
	assert.Equal(t, "d", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
	assert.Zero(t, got[0].Rank)

	var none []item
	require.NoError(t, c.Find(ctx, store.Where(), store.FindOptions{Skip: 10}, &none))
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("items")
	id := primitive.NewObjectID()
	seed(t, c, item{ID: id, Name: "before"})

	var updated item
	require.NoError(t, c.UpdateOne(ctx, store.Where().ID(id), map[string]interface{}{"name": "after"}, &updated))
	assert.Equal(t, "after", updated.Name)

	err := c.UpdateOne(ctx, store.Where().ID(primitive.NewObjectID()), map[string]interface{}{"name": "x"}, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var removed item
	require.NoError(t, c.DeleteOne(ctx, store.Where().ID(id), &removed))
	assert.Equal(t, "after", removed.Name)

	n, err := c.Count(ctx, store.Where())
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, c.FindOne(ctx, store.Where().ID(id), store.FindOptions{}, &removed), store.ErrNotFound)
}

func TestInsertRequiresUniqueID(t *testing.T) {
	c := New().Collection("items")
	id := primitive.NewObjectID()
	seed(t, c, item{ID: id})

	assert.Error(t, c.Insert(context.Background(), item{ID: id}))
	assert.Error(t, c.Insert(context.Background(), map[string]interface{}{"name": "no id"}))
}
