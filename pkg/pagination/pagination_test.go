package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func query(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseDefaults(t *testing.T) {
	p := Parse(query(nil))

	assert.Equal(t, Params{PageSize: 10, PageNumber: 1, Paginate: true}, p)
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   Params
	}{
		{"explicit", map[string]string{"pageSize": "25", "pageNumber": "3"}, Params{25, 3, true}},
		{"pagination false", map[string]string{"pagination": "false"}, Params{10, 1, false}},
		{"pagination true", map[string]string{"pagination": "true"}, Params{10, 1, true}},
		{"pagination other", map[string]string{"pagination": "no"}, Params{10, 1, true}},
		{"leading digits", map[string]string{"pageSize": "20abc"}, Params{20, 1, true}},
		{"garbage", map[string]string{"pageSize": "abc", "pageNumber": "x"}, Params{10, 1, true}},
		{"negative page", map[string]string{"pageNumber": "-2"}, Params{10, -2, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(query(tt.values)))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, int64(0), Params{PageSize: 10, PageNumber: 1}.Offset())
	assert.Equal(t, int64(0), Params{PageSize: 10, PageNumber: 0}.Offset())
	assert.Equal(t, int64(0), Params{PageSize: 10, PageNumber: -4}.Offset())
	assert.Equal(t, int64(10), Params{PageSize: 10, PageNumber: 2}.Offset())
	assert.Equal(t, int64(0), Params{PageSize: 0, PageNumber: 5}.Offset())
}

func TestOffsetSaturates(t *testing.T) {
	p := Parse(query(map[string]string{"pageNumber": "1844674407370955162"}))

	assert.Equal(t, int64(math.MaxInt64), p.Offset())
	assert.Equal(t, int64(math.MaxInt64), Params{PageSize: 2, PageNumber: math.MaxInt}.Offset())
}

func TestPageCount(t *testing.T) {
	p := Params{PageSize: 10, PageNumber: 2}

	assert.Equal(t, int64(3), p.PageCount(25))
	assert.Equal(t, int64(2), p.PageCount(20))
	assert.Equal(t, int64(1), p.PageCount(0))
}

func TestNewPageNeverNil(t *testing.T) {
	page := NewPage[int](Params{PageSize: 10, PageNumber: 1}, 0, nil)
	all := NewAll[int](nil)

	assert.NotNil(t, page.Result)
	assert.Equal(t, int64(1), page.PageCount)
	assert.NotNil(t, all.Result)
	assert.Equal(t, 0, all.Total)
}
