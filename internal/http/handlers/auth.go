package handlers

import (
	"net/http"
	"time"

	intconfig "cms/internal/config"
	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/http/middleware"
	"cms/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthUser is the user payload in auth responses.
type AuthUser struct {
	ID       int64  `json:"id"`
	SiteID   int64  `json:"siteId"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func toAuthUser(u models.User) AuthUser {
	return AuthUser{
		ID:       u.ID,
		SiteID:   u.SiteID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Status:   u.Status,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	rc, ok := middleware.GetAuth(c)
	if !ok || rc.SiteID <= 0 {
		respondError(c, http.StatusBadRequest, "site_missing", "header X-Site-ID wajib diisi", nil)
		return
	}

	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	u, err := userService(c).Login(rc, req.Email, req.Password)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "Email/username atau password salah", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"site_id": u.SiteID,
		"role":    u.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(intconfig.JWTSecret())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_failed", "gagal membuat token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  toAuthUser(u),
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	rc, ok := middleware.GetAuth(c)
	if !ok || rc.SiteID <= 0 {
		respondError(c, http.StatusBadRequest, "site_missing", "header X-Site-ID wajib diisi", nil)
		return
	}

	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	// pendaftar baru selalu viewer; role lain harus lewat admin
	u, err := userService(c).Create(rc, services.UserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registrasi berhasil",
		"user":    toAuthUser(u),
	})
}
