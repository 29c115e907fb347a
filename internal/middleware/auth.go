package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Mdtr3002/hms-be/pkg/auth"
)

const ContextUserID = "userId"

// OptionalAuth attaches the caller identity when the request carries a valid bearer
// token. Requests without one, or with an invalid one, continue anonymously.
func OptionalAuth(jwt auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || jwt == nil {
			c.Next()
			return
		}

		token, err := auth.BearerToken(header)
		if err == nil {
			var meta *auth.TokenMeta
			if meta, err = jwt.ValidateToken(token); err == nil {
				c.Set(ContextUserID, meta.UserID)
				c.Request = c.Request.WithContext(auth.WithTokenMeta(c.Request.Context(), meta))
			}
		}
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ContextRequestID)).Msg("ignoring bearer token")
		}
		c.Next()
	}
}
