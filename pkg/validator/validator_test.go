package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	RecordID string `json:"recordId" validate:"required"`
}

type request struct {
	Name    string   `json:"name" validate:"required"`
	Age     int      `json:"age" validate:"gte=0"`
	Start   int64    `json:"start"`
	End     int64    `json:"end" validate:"gtefield=Start"`
	Records []record `json:"records" validate:"dive"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(request{Name: "ok", Start: 1, End: 2}))
	assert.EqualError(t, v.Validate(request{}), "name is required")
	assert.EqualError(t, v.Validate(request{Name: "x", Age: -1}), "age must be at least 0")
	assert.EqualError(t, v.Validate(request{Name: "x", Start: 5, End: 1}), "end must not be before Start")
	assert.EqualError(t,
		v.Validate(request{Name: "x", Records: []record{{}}}),
		"records[0].recordId is required")
}
