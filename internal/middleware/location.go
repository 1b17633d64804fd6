package middleware

import (
	"net/http"

	"stockledger/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextLocation     = "location"
	ContextLocationRole = "locationRole"
)

// LocationScope tags every request with the location this process serves.
func LocationScope(location, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextLocation, location)
		c.Set(ContextLocationRole, role)
		c.Next()
	}
}

// RequireRole only lets a request through when the process runs as one of allowedRoles.
// It scopes routes to a side of the requisition flow; it is not authentication.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextLocationRole)
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Not available at a "+role+" location"))
	}
}
