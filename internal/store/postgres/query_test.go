package postgres

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/store"
)

func TestWhere(t *testing.T) {
	id := primitive.NewObjectID()

	var b builder
	where, err := b.where(store.Where().ID(id).NotExists("deletedAt"))
	require.NoError(t, err)

	assert.Equal(t, "id = $1 AND NOT (doc ? $2)", where)
	assert.Equal(t, []interface{}{id.Hex(), "deletedAt"}, b.args)
}

func TestWhereBefore(t *testing.T) {
	cutoff := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var b builder
	where, err := b.where(store.Where().Exists("deletedAt").Before("deletedAt", cutoff))
	require.NoError(t, err)

	assert.Equal(t, "doc ? $1 AND (doc->>$2::text)::timestamptz < $3", where)
	assert.Equal(t, []interface{}{"deletedAt", "deletedAt", cutoff}, b.args)
}

func TestWhereEmpty(t *testing.T) {
	var b builder
	where, err := b.where(store.Where())
	require.NoError(t, err)

	assert.Equal(t, "TRUE", where)
	assert.Empty(t, b.args)
}

func TestWhereValues(t *testing.T) {
	subject := primitive.NewObjectID()
	other := primitive.NewObjectID()

	var b builder
	where, err := b.where(store.Where().
		Eq("subject", subject).
		Regex("name", "^Ana").
		In("_id", subject, other).
		In("role", "Doctor", "Nurse").
		Exists("deletedAt"))
	require.NoError(t, err)

	assert.Equal(t,
		"doc->$1::text @> $2::jsonb AND doc->>$3::text ~ $4 AND id = ANY($5) AND doc->$6::text IN (SELECT jsonb_array_elements($7::jsonb)) AND doc ? $8",
		where)
	assert.Equal(t, `"`+subject.Hex()+`"`, b.args[1])
	assert.Equal(t, "^Ana", b.args[3])
	assert.Equal(t, pq.Array([]string{subject.Hex(), other.Hex()}), b.args[4])
	assert.Equal(t, `["Doctor","Nurse"]`, b.args[6])
}

func TestFind(t *testing.T) {
	var b builder
	query, err := b.find(store.Patients, store.Where().NotExists("deletedAt"), store.FindOptions{
		Sort:  []store.SortField{{Field: "createdAt", Desc: true}, {Field: "_id", Desc: true}},
		Skip:  10,
		Limit: 10,
		Omit:  []string{"__v"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT doc - $1::text[] FROM "patients" WHERE NOT (doc ? $2) ORDER BY created_at DESC, id DESC OFFSET $3 LIMIT $4`,
		query)
	assert.Len(t, b.args, 4)
}

func TestOrderByJSONField(t *testing.T) {
	assert.Equal(t, " ORDER BY doc->'name'", orderBy([]store.SortField{{Field: "name"}}))
	assert.Equal(t, "", orderBy(nil))
}

func TestConfigDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db/hms", Config{URI: "postgres://u:p@db/hms"}.dsn())
	assert.Equal(t,
		"host=db port=5432 user=u password=p dbname=hms sslmode=disable",
		Config{Host: "db", Port: 5432, User: "u", Password: "p", Name: "hms", SSLMode: "disable"}.dsn())
}
