package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"cms/internal/domain"

	"github.com/gin-gonic/gin"
)

const siteHeader = "X-Site-ID"

// SiteScope resolves the site for public routes from the X-Site-ID header.
// An authenticated caller keeps the site from its token; the header never
// overrides it.
func SiteScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetAuth(c); ok {
			c.Next()
			return
		}
		raw := strings.TrimSpace(c.GetHeader(siteHeader))
		if raw == "" {
			abortJSON(c, http.StatusBadRequest, "site_missing", "header X-Site-ID wajib diisi")
			return
		}
		siteID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || siteID <= 0 {
			abortJSON(c, http.StatusBadRequest, "site_invalid", "header X-Site-ID tidak valid")
			return
		}
		c.Set(authContextKey, domain.RequestContext{SiteID: domain.ID(siteID)})
		c.Next()
	}
}
