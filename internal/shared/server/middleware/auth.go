package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"audit-backend/internal/shared/auth"
	"audit-backend/internal/shared/server/respond"
)

const (
	principalKey = "principal"
	roleKey      = "role"
)

// AdminAuth requires a bearer JWT carrying the admin role.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		c.Set(principalKey, claims.Sub)
		c.Set(roleKey, claims.Role)
		if !claims.IsAdmin() {
			respond.Error(c, http.StatusForbidden, "forbidden", "admin role required", nil)
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated subject, if any.
func PrincipalFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(principalKey)
}
