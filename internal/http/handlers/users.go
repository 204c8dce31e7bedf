package handlers

import (
	"net/http"

	"cms/internal/domain/models"
	"cms/internal/http/middleware"
	"cms/internal/repositories"
	"cms/internal/services"

	"github.com/gin-gonic/gin"
)

func userService(c *gin.Context) services.UserService {
	return services.UserService{
		Repo:      repositories.UserRepository{},
		Audit:     auditService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/users
func GetUsers(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	spec, err := ParseListQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	spec = withDefaultSearchFields(spec, "name", "username", "email")

	res, err := userService(c).List(rc, spec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	u, err := userService(c).Get(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /api/users
func CreateUser(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)

	var in services.UserInput
	if !BindJSONOrError(c, &in) {
		return
	}

	u, err := userService(c).Create(rc, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// PATCH /api/users/:id
func UpdateUser(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var upd models.UserUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}

	u, err := userService(c).Update(rc, id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := userService(c).Delete(rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user berhasil dihapus"})
}
