package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Mdtr3002/hms-be/pkg/errors"
)

const (
	StatusLocked = http.StatusLocked

	composerKey = "composer"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Payload interface{} `json:"payload"`
}

// Composer writes the response envelope for a single request.
type Composer struct {
	c *gin.Context
}

func NewComposer(c *gin.Context) *Composer {
	return &Composer{c: c}
}

// BindComposer attaches a Composer to every request.
func BindComposer() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(composerKey, NewComposer(c))
		c.Next()
	}
}

// From returns the composer bound to c, creating one if the middleware did not run.
func From(c *gin.Context) *Composer {
	if v, ok := c.Get(composerKey); ok {
		if composer, ok := v.(*Composer); ok {
			return composer
		}
	}
	composer := NewComposer(c)
	c.Set(composerKey, composer)
	return composer
}

func (r *Composer) json(success bool, code int, message string, payload interface{}) {
	r.c.JSON(code, Response{
		Success: success,
		Code:    code,
		Message: message,
		Payload: payload,
	})
}

func pick(message []string, fallback string) string {
	if len(message) > 0 && message[0] != "" {
		return message[0]
	}
	return fallback
}

// Success sends a 200 envelope
func (r *Composer) Success(payload interface{}, message ...string) {
	r.json(true, http.StatusOK, pick(message, ""), payload)
}

func (r *Composer) BadRequest(message ...string) {
	r.json(false, http.StatusBadRequest, pick(message, "Parameter not correctly"), gin.H{})
}

func (r *Composer) Unauthorized(message ...string) {
	r.json(false, http.StatusUnauthorized, pick(message, "Authorization failed"), gin.H{})
}

func (r *Composer) NotAllowed(message ...string) {
	r.json(false, http.StatusForbidden, pick(message, "Forbidden"), gin.H{})
}

func (r *Composer) NotFound(message ...string) {
	r.json(false, http.StatusNotFound, pick(message, "Resource not found"), gin.H{})
}

func (r *Composer) Locked(message ...string) {
	r.json(false, StatusLocked, pick(message, "Unlock code required"), gin.H{})
}

// Fail logs err and answers with a 400 envelope carrying its message. Every failure
// kind maps to 400 so existing clients keep working.
func (r *Composer) Fail(err error) {
	log.Error().
		Err(err).
		Str("kind", errors.CodeOf(err).String()).
		Str("method", r.c.Request.Method).
		Str("path", r.c.Request.URL.Path).
		Str("request_id", r.c.GetString("request_id")).
		Msg("request failed")

	r.BadRequest(errors.Message(err))
}
