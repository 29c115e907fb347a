package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/store"
)

func TestToBSON(t *testing.T) {
	id := primitive.NewObjectID()

	assert.Equal(t, bson.M{}, toBSON(store.Where()))
	assert.Equal(t, bson.M{"_id": bson.M{"$eq": id}}, toBSON(store.Where().ID(id)))

	got := toBSON(store.Where().Regex("name", "Ana").NotExists("deletedAt"))
	assert.Equal(t, bson.M{"$and": []bson.M{
		{"name": bson.M{"$regex": primitive.Regex{Pattern: "Ana"}}},
		{"deletedAt": bson.M{"$exists": false}},
	}}, got)

	cutoff := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got = toBSON(store.Where().Before("deletedAt", cutoff))
	assert.Equal(t, bson.M{"deletedAt": bson.M{"$lt": cutoff}}, got)

	got = toBSON(store.Where().In("_id", id))
	assert.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{id}}}, got)
}

func TestSortAndProjection(t *testing.T) {
	assert.Nil(t, sortDoc(nil))
	assert.Equal(t,
		bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		sortDoc([]store.SortField{{Field: "createdAt", Desc: true}, {Field: "_id", Desc: true}}),
	)

	assert.Nil(t, projection(nil))
	assert.Equal(t, bson.M{"__v": 0}, projection([]string{"__v"}))
}
