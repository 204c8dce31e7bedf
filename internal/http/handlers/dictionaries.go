package handlers

import (
	"net/http"
	"strings"

	"cms/internal/domain/models"
	"cms/internal/http/middleware"
	"cms/internal/repositories"
	"cms/internal/services"

	"github.com/gin-gonic/gin"
)

func dictionaryService(c *gin.Context) services.DictionaryService {
	return services.DictionaryService{
		Repo:      repositories.DictionaryRepository{},
		Cache:     getCache(),
		Audit:     auditService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/dictionaries
func GetDictionaries(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	spec, err := ParseListQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	spec = withDefaultSearchFields(spec, "itemKey", "itemValue")

	res, err := dictionaryService(c).List(rc, spec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/dictionaries/active?group=badges returns the ACTIVE entries of
// one group, served from cache when warm.
func GetDictionaryActiveGroup(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)

	entries, err := dictionaryService(c).ActiveGroup(rc, strings.TrimSpace(c.Query("group")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// GET /api/dictionaries/:id
func GetDictionaryByID(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	d, err := dictionaryService(c).Get(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/dictionaries
func CreateDictionary(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)

	var in services.DictionaryInput
	if !BindJSONOrError(c, &in) {
		return
	}

	d, err := dictionaryService(c).Create(rc, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PATCH /api/dictionaries/:id
func UpdateDictionary(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var upd models.DictionaryUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}

	d, err := dictionaryService(c).Update(rc, id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /api/dictionaries/:id
func DeleteDictionary(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := dictionaryService(c).Delete(rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entri kamus berhasil dihapus"})
}
