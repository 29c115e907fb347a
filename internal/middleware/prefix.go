package middleware

import "github.com/gin-gonic/gin"

const ContextRoutePrefix = "route_prefix"

// RecordRoutePrefix stores the mount path of the controller handling the request.
func RecordRoutePrefix(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextRoutePrefix, prefix)
		c.Next()
	}
}

// RoutePrefix returns the prefix recorded for the request, or "".
func RoutePrefix(c *gin.Context) string {
	return c.GetString(ContextRoutePrefix)
}
