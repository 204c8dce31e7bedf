package handlers

import (
	"io"
	"net/http"

	"cms/internal/http/middleware"
	"cms/internal/repositories"
	"cms/internal/services"

	"github.com/gin-gonic/gin"
)

func articleService(c *gin.Context) services.ArticleService {
	return services.ArticleService{
		Repo:      repositories.ArticleRepository{},
		Audit:     auditService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func exportService(c *gin.Context) services.ExportService {
	return services.ExportService{
		Repo:      repositories.ArticleRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/articles?q=&filters=&comparisons=&sort=&page=&pageSize=
func GetArticles(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	spec, err := ParseListQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	spec = withDefaultSearchFields(spec, "title", "summary")

	res, err := articleService(c).List(rc, spec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/articles/:id?countView=1
func GetArticleByID(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	a, err := articleService(c).Get(rc, id, c.Query("countView") == "1")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /api/articles
func CreateArticle(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)

	var in services.ArticleInput
	if !BindJSONOrError(c, &in) {
		return
	}

	a, err := articleService(c).Create(rc, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// PATCH /api/articles/:id
// The raw body goes to the service untouched; only keys present in the
// JSON are applied.
func UpdateArticle(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "body kosong", nil)
		return
	}

	a, err := articleService(c).UpdatePartial(rc, id, raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /api/articles/:id/publish
func PublishArticle(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	a, err := articleService(c).UpdatePartial(rc, id, []byte(`{"status":"PUBLISHED"}`))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DELETE /api/articles/:id
func DeleteArticle(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := articleService(c).Delete(rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "artikel berhasil dihapus"})
}

// GET /api/articles/:id/export returns the article as PDF (inline).
func GetArticlePDF(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	pdfBytes, filename, err := exportService(c).ExportArticle(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/articles/export renders one listing page as a PDF report
// (download). The same list parameters apply, with the page size capped
// by the exporter.
func GetArticleListingPDF(c *gin.Context) {
	rc, _ := middleware.GetAuth(c)
	spec, err := ParseListQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	spec = withDefaultSearchFields(spec, "title", "summary")

	pdfBytes, filename, err := exportService(c).ExportListing(rc, spec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
