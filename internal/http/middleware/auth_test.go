package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	intconfig "cms/internal/config"
	"cms/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signTestToken(t *testing.T, userID, siteID int64, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"site_id": siteID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(intconfig.JWTSecret())
	if err != nil {
		t.Fatalf("gagal sign token: %v", err)
	}
	return signed
}

func TestRequireAuthParsesBearerToken(t *testing.T) {
	r := gin.New()
	var got domain.RequestContext
	r.GET("/p", RequireAuth(), func(c *gin.Context) {
		got, _ = GetAuth(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, 5, 7, domain.RoleEditor))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if got.UserID != 5 || got.SiteID != 7 || got.Role != domain.RoleEditor {
		t.Fatalf("context = %+v, want user 5 site 7 editor", got)
	}
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r := gin.New()
	r.GET("/p", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(5),
		"site_id": int64(7),
		"role":    domain.RoleOwner,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forged, err := token.SignedString([]byte("kunci-lain"))
	if err != nil {
		t.Fatalf("gagal sign token: %v", err)
	}

	r := gin.New()
	r.GET("/p", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSiteScopeReadsHeader(t *testing.T) {
	r := gin.New()
	var got domain.RequestContext
	r.GET("/p", SiteScope(), func(c *gin.Context) {
		got, _ = GetAuth(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("X-Site-ID", "9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.SiteID != 9 || got.UserID != 0 || got.Role != "" {
		t.Fatalf("context = %+v, want anonymous site 9", got)
	}
}

func TestSiteScopeRejectsMissingOrBadHeader(t *testing.T) {
	r := gin.New()
	r.GET("/p", SiteScope(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, raw := range []string{"", "abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		if raw != "" {
			req.Header.Set("X-Site-ID", raw)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("X-Site-ID=%q: status = %d, want 400", raw, w.Code)
		}
	}
}

func TestSiteScopeNeverOverridesAuthenticatedSite(t *testing.T) {
	r := gin.New()
	var got domain.RequestContext
	r.GET("/p", AuthOptional(), SiteScope(), func(c *gin.Context) {
		got, _ = GetAuth(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, 5, 7, domain.RoleViewer))
	req.Header.Set("X-Site-ID", "9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.SiteID != 7 {
		t.Fatalf("site = %d, want 7 dari token, bukan header", got.SiteID)
	}
}

func TestRequireRoleEnforcesOrder(t *testing.T) {
	r := gin.New()
	r.GET("/p", RequireAuth(), RequireRole(domain.RoleEditor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		role string
		want int
	}{
		{domain.RoleViewer, http.StatusForbidden},
		{domain.RoleEditor, http.StatusOK},
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleOwner, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 5, 7, tc.role))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("role %s: status = %d, want %d", tc.role, w.Code, tc.want)
		}
	}
}

func TestRequireRoleWithoutAuthReturns401(t *testing.T) {
	r := gin.New()
	r.GET("/p", RequireRole(domain.RoleEditor), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
