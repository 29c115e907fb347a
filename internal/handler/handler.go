// Package handler holds the request parsing shared by the entity controllers.
package handler

import (
	"errors"
	"io"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mdtr3002/hms-be/internal/service"
	"github.com/Mdtr3002/hms-be/internal/store"
	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
	"github.com/Mdtr3002/hms-be/pkg/pagination"
)

// ParseID reads the :id path parameter as an ObjectID.
func ParseID(c *gin.Context) (primitive.ObjectID, error) {
	return parseObjectID("id", c.Param("id"))
}

func parseObjectID(name, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidation("Invalid "+name+": "+raw, err)
	}
	return id, nil
}

// Bind decodes the JSON body into v. An empty body leaves v untouched.
func Bind(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewValidation("Invalid request body", err)
	}
	return nil
}

// QueryFilter narrows a list filter from the request query.
type QueryFilter func(c *gin.Context, f store.Filter) (store.Filter, error)

// Text matches field against the query parameter param as a regular expression.
// The value is percent-decoded once more, as clients encode it before sending. A
// literal "+" is kept.
func Text(param, field string) QueryFilter {
	return func(c *gin.Context, f store.Filter) (store.Filter, error) {
		raw := c.Query(param)
		if raw == "" {
			return f, nil
		}
		if decoded, err := url.PathUnescape(raw); err == nil {
			raw = decoded
		}
		return f.Regex(field, raw), nil
	}
}

// Ref matches field against the ObjectID in query parameter param.
func Ref(param, field string) QueryFilter {
	return func(c *gin.Context, f store.Filter) (store.Filter, error) {
		raw := c.Query(param)
		if raw == "" {
			return f, nil
		}
		id, err := parseObjectID(param, raw)
		if err != nil {
			return f, err
		}
		return f.Eq(field, id), nil
	}
}

// ListQuery parses pagination and the given filters.
func ListQuery(c *gin.Context, filters ...QueryFilter) (service.ListQuery, error) {
	q := service.ListQuery{
		Filter: store.Where(),
		Page:   pagination.Parse(c.Query),
	}
	for _, apply := range filters {
		f, err := apply(c, q.Filter)
		if err != nil {
			return q, err
		}
		q.Filter = f
	}
	return q, nil
}

// HardDelete reports whether the request asked to bypass soft delete.
func HardDelete(c *gin.Context) bool {
	return c.Query("hard") == "true"
}
