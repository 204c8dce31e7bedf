package middleware

import (
	"net/http"

	"cms/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route behind a minimum role. It expects RequireAuth
// to have run first; requests without a caller context are rejected.
func RequireRole(min string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := GetAuth(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "harus login")
			return
		}
		if !domain.RoleAtLeast(rc.Role, min) {
			abortJSON(c, http.StatusForbidden, "forbidden", "akses ditolak")
			return
		}
		c.Next()
	}
}
