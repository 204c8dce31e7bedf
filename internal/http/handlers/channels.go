package handlers

import (
	"net/http"

	"cms/internal/domain/models"
	"cms/internal/http/middleware"
	"cms/internal/repositories"
	"cms/internal/services"

	"github.com/gin-gonic/gin"
)

func channelService(c *gin.Context) services.ChannelService {
	return services.ChannelService{
		Repo:      repositories.ChannelRepository{},
		Cache:     getCache(),
		Audit:     auditService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/channels
func GetChannels(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	spec, err := ParseListQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	spec = withDefaultSearchFields(spec, "name")

	res, err := channelService(c).List(rc, spec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/channels/tree returns active channels nested one level deep,
// served from cache when warm.
func GetChannelTree(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)

	tree, err := channelService(c).Tree(rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tree})
}

// GET /api/channels/:id
func GetChannelByID(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	ch, err := channelService(c).Get(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// POST /api/channels
func CreateChannel(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)

	var in services.ChannelInput
	if !BindJSONOrError(c, &in) {
		return
	}

	ch, err := channelService(c).Create(rc, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// PATCH /api/channels/:id
func UpdateChannel(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var upd models.ChannelUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}

	ch, err := channelService(c).Update(rc, id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// DELETE /api/channels/:id
func DeleteChannel(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := channelService(c).Delete(rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "channel berhasil dihapus"})
}
