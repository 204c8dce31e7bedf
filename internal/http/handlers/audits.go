package handlers

import (
	"net/http"

	"cms/internal/http/middleware"
	"cms/internal/repositories"
	"cms/internal/services"

	"github.com/gin-gonic/gin"
)

func auditService(c *gin.Context) services.AuditService {
	return services.AuditService{
		Repo:      repositories.AuditRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/audit-logs
func GetAuditLogs(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	spec, err := ParseListQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	spec = withDefaultSearchFields(spec, "action", "entity")

	res, err := auditService(c).List(rc, spec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
