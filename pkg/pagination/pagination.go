package pagination

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	DefaultPageSize   = 10
	DefaultPageNumber = 1
)

// Params holds the list query controls shared by every collection endpoint.
type Params struct {
	PageSize   int
	PageNumber int
	// Paginate is false only when the client sent pagination=false.
	Paginate bool
}

// Page is the paginated list payload.
type Page[T any] struct {
	Total     int64 `json:"total"`
	PageCount int64 `json:"pageCount"`
	PageSize  int   `json:"pageSize"`
	Result    []T   `json:"result"`
}

// All is the unpaginated list payload.
type All[T any] struct {
	Total  int `json:"total"`
	Result []T `json:"result"`
}

// Parse reads pageSize, pageNumber and pagination through get, which is usually
// gin.Context.Query.
func Parse(get func(string) string) Params {
	return Params{
		PageSize:   parseInt(get("pageSize"), DefaultPageSize),
		PageNumber: parseInt(get("pageNumber"), DefaultPageNumber),
		Paginate:   get("pagination") != "false",
	}
}

// parseInt accepts an optional sign followed by leading digits and ignores the rest,
// so "20abc" reads as 20. Anything without leading digits yields def.
func parseInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}

	end := 0
	if raw[0] == '+' || raw[0] == '-' {
		end = 1
	}
	start := end
	for end < len(raw) && unicode.IsDigit(rune(raw[end])) {
		end++
	}
	if end == start {
		return def
	}

	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return def
	}
	return n
}

// Offset is the number of records to skip, never negative. It saturates instead of
// overflowing on huge page numbers.
func (p Params) Offset() int64 {
	if p.PageSize <= 0 || p.PageNumber <= 1 {
		return 0
	}
	size, skipped := int64(p.PageSize), int64(p.PageNumber)-1
	if skipped > math.MaxInt64/size {
		return math.MaxInt64
	}
	return size * skipped
}

// Limit is the page length. A non-positive page size means no limit.
func (p Params) Limit() int64 {
	return max(int64(p.PageSize), 0)
}

// PageCount returns ceil(total/pageSize) with a floor of 1.
func (p Params) PageCount(total int64) int64 {
	if p.PageSize <= 0 {
		return 1
	}
	size := int64(p.PageSize)
	return max((total+size-1)/size, 1)
}

// NewPage assembles the paginated payload, never returning a nil result slice.
func NewPage[T any](p Params, total int64, result []T) Page[T] {
	if result == nil {
		result = []T{}
	}
	return Page[T]{
		Total:     total,
		PageCount: p.PageCount(total),
		PageSize:  p.PageSize,
		Result:    result,
	}
}

func NewAll[T any](result []T) All[T] {
	if result == nil {
		result = []T{}
	}
	return All[T]{Total: len(result), Result: result}
}
