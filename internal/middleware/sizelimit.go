package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

// DefaultMaxBodySize matches the JSON body limit the admin clients were built against.
const DefaultMaxBodySize = 50 << 20

// SizeLimit rejects bodies larger than max bytes and caps the reader for the rest.
func SizeLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		max = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > max {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httputil.Response{
				Success: false,
				Code:    http.StatusRequestEntityTooLarge,
				Message: fmt.Sprintf("Request size exceeds limit: body size exceeds %d bytes", max),
				Payload: gin.H{},
			})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}
