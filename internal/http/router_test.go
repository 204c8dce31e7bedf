package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	intconfig "cms/internal/config"
	"cms/internal/domain"
	"cms/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func routerToken(t *testing.T, userID, siteID int64, role string) string {
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

func routerWithMockDB(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("gagal buka sqlmock: %v", err)
	}
	t.Cleanup(func() {
		intconfig.DB = nil
		db.Close()
	})
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)
	return NewRouter(intconfig.Env{}), mock
}

func articleListRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "site_id", "channel_id", "author_id", "title", "slug", "summary",
		"body", "status", "views", "published_at", "created_at", "updated_at",
	}).AddRow(
		int64(31), int64(7), int64(2), int64(5), "Kabar Terkini", "kabar-terkini",
		"Ringkasan", "Isi", "PUBLISHED", int64(12),
		"2025-05-01 08:00:00", "2025-04-30 09:00:00", "2025-05-01 08:00:00",
	)
}

func TestArticlesListUsesSiteFromToken(t *testing.T) {
	r, mock := routerWithMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles WHERE site_id = \? AND status <> \?`).
		WithArgs(int64(7), "DELETED").
		WillReturnRows(sqlmock.NewRows([]string{"cnt"}).AddRow(1))
	mock.ExpectQuery(`FROM articles WHERE site_id = \? AND status <> \? ORDER BY id DESC LIMIT \? OFFSET \?`).
		WithArgs(int64(7), "DELETED", 10, 0).
		WillReturnRows(articleListRows())

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	req.Header.Set("Authorization", "Bearer "+routerToken(t, 5, 7, domain.RoleViewer))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var res struct {
		Data       []models.Article `json:"data"`
		Total      int              `json:"total"`
		Page       int              `json:"page"`
		PageSize   int              `json:"pageSize"`
		TotalPages int              `json:"totalPages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("gagal decode respons: %v", err)
	}
	if res.Total != 1 || len(res.Data) != 1 || res.Page != 1 || res.PageSize != 10 || res.TotalPages != 1 {
		t.Fatalf("result = total %d page %d size %d pages %d rows %d",
			res.Total, res.Page, res.PageSize, res.TotalPages, len(res.Data))
	}
	if res.Data[0].SiteID != 7 || res.Data[0].Slug != "kabar-terkini" {
		t.Fatalf("row = %+v", res.Data[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ekspektasi query: %v", err)
	}
}

func TestArticlesListRejectsOversizedPage(t *testing.T) {
	r, _ := routerWithMockDB(t)

	req := httptest.NewRequest(http.MethodGet, "/api/articles?pageSize=101", nil)
	req.Header.Set("Authorization", "Bearer "+routerToken(t, 5, 7, domain.RoleViewer))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestArticlesListRequiresToken(t *testing.T) {
	r, _ := routerWithMockDB(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/articles", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestArticleCreateGatedToEditor(t *testing.T) {
	r, _ := routerWithMockDB(t)

	req := httptest.NewRequest(http.MethodPost, "/api/articles", nil)
	req.Header.Set("Authorization", "Bearer "+routerToken(t, 5, 7, domain.RoleViewer))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestPublicTreeNeedsSiteHeader(t *testing.T) {
	r, _ := routerWithMockDB(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/channels/tree", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHealthIsOpen(t *testing.T) {
	r, _ := routerWithMockDB(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
