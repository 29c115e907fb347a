package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Mdtr3002/hms-be/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, fn func(*Composer)) (int, map[string]interface{}) {
	t.Helper()

	r := gin.New()
	r.Use(BindComposer())
	r.GET("/", func(c *gin.Context) { fn(From(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestComposerFailureDefaults(t *testing.T) {
	tests := []struct {
		name    string
		call    func(*Composer)
		code    int
		message string
	}{
		{"bad request", func(c *Composer) { c.BadRequest() }, 400, "Parameter not correctly"},
		{"unauthorized", func(c *Composer) { c.Unauthorized() }, 401, "Authorization failed"},
		{"not allowed", func(c *Composer) { c.NotAllowed() }, 403, "Forbidden"},
		{"not found", func(c *Composer) { c.NotFound() }, 404, "Resource not found"},
		{"locked", func(c *Composer) { c.Locked() }, 423, "Unlock code required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, tt.call)

			assert.Equal(t, tt.code, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(tt.code), body["code"])
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, map[string]interface{}{}, body["payload"])
		})
	}
}

func TestComposerSuccess(t *testing.T) {
	status, body := serve(t, func(c *Composer) { c.Success(gin.H{"total": 1}) })

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "", body["message"])
	assert.Equal(t, map[string]interface{}{"total": float64(1)}, body["payload"])

	_, body = serve(t, func(c *Composer) { c.Success(nil, "done") })
	assert.Equal(t, "done", body["message"])
}

func TestComposerFailMapsEveryErrorTo400(t *testing.T) {
	for _, err := range []error{
		apperrors.NewNotFound("Patient not found"),
		apperrors.NewConflict("There are still chapters that belong to this subject. Please delete them first"),
		errors.New("server selection timeout"),
	} {
		status, body := serve(t, func(c *Composer) { c.Fail(err) })

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, apperrors.Message(err), body["message"])
	}
}
