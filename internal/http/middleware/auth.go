package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	intconfig "cms/internal/config"
	"cms/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authContextKey = "auth_context"

var errNoToken = errors.New("token tidak ditemukan")

// RequireAuth rejects requests without a valid bearer token and stores the
// caller context for handlers downstream.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, err := contextFromRequest(c)
		if err != nil {
			msg := "sesi tidak valid, silakan login ulang"
			if errors.Is(err, errNoToken) {
				msg = "harus login"
			}
			abortJSON(c, http.StatusUnauthorized, "unauthorized", msg)
			return
		}
		c.Set(authContextKey, rc)
		c.Next()
	}
}

// AuthOptional stores the caller context when a valid bearer token is
// present. Requests without one, or with a token that fails verification,
// continue anonymously.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rc, err := contextFromRequest(c); err == nil {
			c.Set(authContextKey, rc)
		}
		c.Next()
	}
}

// GetAuth extracts the caller context stored by RequireAuth, AuthOptional
// or SiteScope.
func GetAuth(c *gin.Context) (domain.RequestContext, bool) {
	if c == nil {
		return domain.RequestContext{}, false
	}
	if v, ok := c.Get(authContextKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc, true
		}
	}
	return domain.RequestContext{}, false
}

func contextFromRequest(c *gin.Context) (domain.RequestContext, error) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return domain.RequestContext{}, errNoToken
	}
	raw := header
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		raw = strings.TrimSpace(header[len("bearer "):])
	}
	return ContextFromToken(raw)
}

// ContextFromToken verifies a signed token and rebuilds the caller context
// from its claims.
func ContextFromToken(raw string) (domain.RequestContext, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metode tanda tangan tidak dikenal: %v", t.Header["alg"])
		}
		return intconfig.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return domain.RequestContext{}, errors.New("token tidak valid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.RequestContext{}, errors.New("claim token tidak terbaca")
	}
	rc := domain.RequestContext{
		UserID: domain.ID(claimInt(claims, "user_id")),
		SiteID: domain.ID(claimInt(claims, "site_id")),
		Role:   claimString(claims, "role"),
	}
	if rc.UserID <= 0 || rc.SiteID <= 0 {
		return domain.RequestContext{}, errors.New("claim token tidak lengkap")
	}
	return rc, nil
}

func claimInt(claims jwt.MapClaims, key string) int64 {
	if v, ok := claims[key].(float64); ok {
		return int64(v)
	}
	return 0
}

func claimString(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
