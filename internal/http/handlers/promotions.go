package handlers

import (
	"net/http"

	"cms/internal/domain/models"
	"cms/internal/http/middleware"
	"cms/internal/repositories"
	"cms/internal/services"

	"github.com/gin-gonic/gin"
)

func promotionService(c *gin.Context) services.PromotionService {
	return services.PromotionService{
		Repo:      repositories.PromotionRepository{},
		Cache:     getCache(),
		Audit:     auditService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/promotions
func GetPromotions(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	spec, err := ParseListQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	spec = withDefaultSearchFields(spec, "title")

	res, err := promotionService(c).List(rc, spec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/promotions/active returns promotions whose window covers now,
// served from cache when warm.
func GetActivePromotions(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)

	promos, err := promotionService(c).Active(rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": promos})
}

// GET /api/promotions/:id
func GetPromotionByID(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	p, err := promotionService(c).Get(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/promotions
func CreatePromotion(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)

	var in services.PromotionInput
	if !BindJSONOrError(c, &in) {
		return
	}

	p, err := promotionService(c).Create(rc, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PATCH /api/promotions/:id
func UpdatePromotion(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var upd models.PromotionUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}

	p, err := promotionService(c).Update(rc, id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/promotions/:id
func DeletePromotion(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := promotionService(c).Delete(rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "promo berhasil dihapus"})
}
