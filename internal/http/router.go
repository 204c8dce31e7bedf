package api

import (
	"log"
	stdhttp "net/http"

	intconfig "cms/internal/config"
	"cms/internal/domain"
	h "cms/internal/http/handlers"
	"cms/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	editorOnly := middleware.RequireRole(domain.RoleEditor)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth (site dari header X-Site-ID)
		auth := api.Group("/auth")
		auth.Use(middleware.SiteScope())
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Public reads: token opsional, site dari claim atau header
		public := api.Group("")
		public.Use(middleware.AuthOptional(), middleware.SiteScope())
		public.GET("/channels/tree", h.GetChannelTree)
		public.GET("/dictionaries/active", h.GetDictionaryActiveGroup)
		public.GET("/promotions/active", h.GetActivePromotions)

		// Articles
		articles := api.Group("/articles")
		articles.Use(middleware.RequireAuth())
		articles.GET("", h.GetArticles)
		articles.GET("/export", h.GetArticleListingPDF)
		articles.GET("/:id", h.GetArticleByID)
		articles.GET("/:id/export", h.GetArticlePDF)
		articles.POST("", editorOnly, h.CreateArticle)
		articles.PATCH("/:id", editorOnly, h.UpdateArticle)
		articles.POST("/:id/publish", editorOnly, h.PublishArticle)
		articles.DELETE("/:id", editorOnly, h.DeleteArticle)

		// Channels
		channels := api.Group("/channels")
		channels.Use(middleware.RequireAuth())
		channels.GET("", h.GetChannels)
		channels.GET("/:id", h.GetChannelByID)
		channels.POST("", editorOnly, h.CreateChannel)
		channels.PATCH("/:id", editorOnly, h.UpdateChannel)
		channels.DELETE("/:id", editorOnly, h.DeleteChannel)

		// Dictionaries
		dictionaries := api.Group("/dictionaries")
		dictionaries.Use(middleware.RequireAuth())
		dictionaries.GET("", h.GetDictionaries)
		dictionaries.GET("/:id", h.GetDictionaryByID)
		dictionaries.POST("", editorOnly, h.CreateDictionary)
		dictionaries.PATCH("/:id", editorOnly, h.UpdateDictionary)
		dictionaries.DELETE("/:id", editorOnly, h.DeleteDictionary)

		// Promotions
		promotions := api.Group("/promotions")
		promotions.Use(middleware.RequireAuth())
		promotions.GET("", h.GetPromotions)
		promotions.GET("/:id", h.GetPromotionByID)
		promotions.POST("", editorOnly, h.CreatePromotion)
		promotions.PATCH("/:id", editorOnly, h.UpdatePromotion)
		promotions.DELETE("/:id", editorOnly, h.DeletePromotion)

		// Users (admin saja)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), adminOnly)
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", h.CreateUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)

		// Audit trail (admin saja)
		audit := api.Group("/audit-logs")
		audit.Use(middleware.RequireAuth(), adminOnly)
		audit.GET("", h.GetAuditLogs)
	}

	return r
}
