package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Mdtr3002/hms-be/internal/store"
)

// builder accumulates positional arguments while rendering SQL fragments.
type builder struct {
	args []interface{}
}

func (b *builder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// idString renders an identifier value the way it appears in the id column.
func idString(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("identifier must encode as a string: %w", err)
	}
	return out, nil
}

func jsonArg(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (b *builder) where(filter store.Filter) (string, error) {
	conds := filter.Conds()
	if len(conds) == 0 {
		return "TRUE", nil
	}

	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		var part string

		switch c.Op {
		case store.OpEq:
			if c.Field == "_id" {
				id, err := idString(c.Value)
				if err != nil {
					return "", err
				}
				part = "id = " + b.arg(id)
				break
			}
			value, err := jsonArg(c.Value)
			if err != nil {
				return "", err
			}
			part = fmt.Sprintf("doc->%s::text @> %s::jsonb", b.arg(c.Field), b.arg(value))

		case store.OpIn:
			values, _ := c.Value.([]interface{})
			if c.Field == "_id" {
				ids := make([]string, 0, len(values))
				for _, v := range values {
					id, err := idString(v)
					if err != nil {
						return "", err
					}
					ids = append(ids, id)
				}
				part = "id = ANY(" + b.arg(pq.Array(ids)) + ")"
				break
			}
			value, err := jsonArg(values)
			if err != nil {
				return "", err
			}
			part = fmt.Sprintf("doc->%s::text IN (SELECT jsonb_array_elements(%s::jsonb))", b.arg(c.Field), b.arg(value))

		case store.OpRegex:
			part = fmt.Sprintf("doc->>%s::text ~ %s", b.arg(c.Field), b.arg(c.Value))

		case store.OpExists:
			part = "doc ? " + b.arg(c.Field)

		case store.OpNotExists:
			part = "NOT (doc ? " + b.arg(c.Field) + ")"

		case store.OpBefore:
			part = fmt.Sprintf("(doc->>%s::text)::timestamptz < %s", b.arg(c.Field), b.arg(c.Value))

		default:
			return "", fmt.Errorf("unsupported filter op %d", c.Op)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " AND "), nil
}

// orderBy maps sort fields to columns; fields without a column sort on their JSON value.
func orderBy(fields []store.SortField) string {
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		var expr string
		switch f.Field {
		case "_id":
			expr = "id"
		case "createdAt":
			expr = "created_at"
		default:
			expr = "doc->" + pq.QuoteLiteral(f.Field)
		}
		if f.Desc {
			expr += " DESC"
		}
		parts = append(parts, expr)
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *builder) selectDoc(omit []string) string {
	if len(omit) == 0 {
		return "doc"
	}
	return "doc - " + b.arg(pq.Array(omit)) + "::text[]"
}

func (b *builder) find(table string, filter store.Filter, opts store.FindOptions) (string, error) {
	cols := b.selectDoc(opts.Omit)
	where, err := b.where(filter)
	if err != nil {
		return "", err
	}

	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s%s", cols, pq.QuoteIdentifier(table), where, orderBy(opts.Sort))
	if opts.Skip > 0 {
		q += " OFFSET " + b.arg(opts.Skip)
	}
	if opts.Limit > 0 {
		q += " LIMIT " + b.arg(opts.Limit)
	}
	return q, nil
}
