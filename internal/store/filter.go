package store

import "time"

// Op is a filter predicate kind.
type Op int

const (
	OpEq Op = iota
	OpIn
	OpRegex
	OpExists
	OpNotExists
	OpBefore
)

// Cond is one predicate on a top-level field.
type Cond struct {
	Field string
	Op    Op
	Value interface{}
}

// Filter is an immutable conjunction of predicates. The zero value matches everything.
type Filter struct {
	conds []Cond
}

// Where starts an empty filter.
func Where() Filter {
	return Filter{}
}

func (f Filter) with(c Cond) Filter {
	conds := make([]Cond, 0, len(f.conds)+1)
	conds = append(conds, f.conds...)
	return Filter{conds: append(conds, c)}
}

func (f Filter) Eq(field string, value interface{}) Filter {
	return f.with(Cond{Field: field, Op: OpEq, Value: value})
}

// ID matches the document identifier.
func (f Filter) ID(id interface{}) Filter {
	return f.Eq("_id", id)
}

// In matches when the field equals any of values.
func (f Filter) In(field string, values ...interface{}) Filter {
	return f.with(Cond{Field: field, Op: OpIn, Value: values})
}

// Regex matches string fields against a RE2 pattern, case-sensitive.
func (f Filter) Regex(field, pattern string) Filter {
	return f.with(Cond{Field: field, Op: OpRegex, Value: pattern})
}

func (f Filter) Exists(field string) Filter {
	return f.with(Cond{Field: field, Op: OpExists})
}

func (f Filter) NotExists(field string) Filter {
	return f.with(Cond{Field: field, Op: OpNotExists})
}

// Before matches timestamp fields strictly earlier than t.
func (f Filter) Before(field string, t time.Time) Filter {
	return f.with(Cond{Field: field, Op: OpBefore, Value: t})
}

// And returns the conjunction of f and other.
func (f Filter) And(other Filter) Filter {
	for _, c := range other.conds {
		f = f.with(c)
	}
	return f
}

// Conds returns a copy of the predicates.
func (f Filter) Conds() []Cond {
	out := make([]Cond, len(f.conds))
	copy(out, f.conds)
	return out
}

func (f Filter) IsEmpty() bool {
	return len(f.conds) == 0
}
