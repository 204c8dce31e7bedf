package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
	"cms/internal/repositories"
	"cms/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// exportListingCap bounds how many rows one listing report renders.
const exportListingCap = 50

// ExportService menghasilkan PDF artikel tunggal dan laporan daftar
// artikel.
type ExportService struct {
	Repo      repositories.ArticleRepository
	RequestID string

	// Loader seams let tests feed rows without a database.
	ArticleLoader func(query.Scope, int64) (models.Article, error)
	ListingLoader func(query.Scope, query.Spec) ([]models.Article, int, error)
}

// ExportArticle renders one article as PDF and returns bytes plus a
// download filename.
func (s ExportService) ExportArticle(rc domain.RequestContext, id int64) ([]byte, string, error) {
	scope := scopeOf(rc.SiteID)

	var (
		a   models.Article
		err error
	)
	if s.ArticleLoader != nil {
		a, err = s.ArticleLoader(scope, id)
	} else {
		a, err = s.Repo.GetByID(scope, id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", domain.NotFoundError{Resource: "artikel", Err: err}
	}
	if err != nil {
		return nil, "", domain.InternalError{Msg: "gagal mengambil artikel", Err: err}
	}

	utils.LogEvent(s.RequestID, "export", "article_pdf", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	return buildArticlePDF(a)
}

// ExportListing renders one page of the article listing as a report PDF.
// The window is capped so a report stays a report.
func (s ExportService) ExportListing(rc domain.RequestContext, spec query.Spec) ([]byte, string, error) {
	if spec.PageSize < 1 || spec.PageSize > exportListingCap {
		spec.PageSize = exportListingCap
	}
	scope := scopeOf(rc.SiteID)

	var (
		rows  []models.Article
		total int
		err   error
	)
	if s.ListingLoader != nil {
		rows, total, err = s.ListingLoader(scope, spec)
	} else {
		rows, total, err = s.Repo.List(scope, spec)
	}
	if err != nil {
		return nil, "", domain.InternalError{Msg: "gagal mengambil artikel", Err: err}
	}

	utils.LogEvent(s.RequestID, "export", "listing_pdf", fmt.Sprintf("site_id=%d rows=%d total=%d", rc.SiteID, len(rows), total))
	return buildListingPDF(int64(rc.SiteID), rows, total)
}

func buildArticlePDF(a models.Article) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(a.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, a.Title, "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Status      : %s", exportSafe(a.Status, "-")),
		fmt.Sprintf("Slug        : %s", exportSafe(a.Slug, "-")),
		fmt.Sprintf("Terbit      : %s", exportSafe(a.PublishedAt, "belum terbit")),
		fmt.Sprintf("Dilihat     : %s kali", utils.FormatCount(a.Views)),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if strings.TrimSpace(a.Summary) != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, a.Summary, "", "", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 11)
	body := strings.TrimSpace(a.Body)
	if body == "" {
		body = "(belum ada isi)"
	}
	pdf.MultiCell(0, 6, body, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ARTIKEL_%d_%s.pdf", a.ID, exportFilenamePart(a.Slug))
	return buf.Bytes(), filename, nil
}

func buildListingPDF(siteID int64, rows []models.Article, total int) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Artikel", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "LAPORAN ARTIKEL")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Site    : %d", siteID))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Dicetak : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total   : %d artikel (ditampilkan %d)", total, len(rows)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(14, 7, "ID")
	pdf.Cell(96, 7, "Judul")
	pdf.Cell(28, 7, "Status")
	pdf.Cell(0, 7, "Terbit")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, a := range rows {
		pdf.Cell(14, 6, fmt.Sprintf("%d", a.ID))
		pdf.Cell(96, 6, exportClip(a.Title, 52))
		pdf.Cell(28, 6, exportSafe(a.Status, "-"))
		pdf.Cell(0, 6, exportSafe(exportDateOnly(a.PublishedAt), "-"))
		pdf.Ln(6)
	}
	if len(rows) == 0 {
		pdf.Cell(0, 6, "(tidak ada data)")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("LAPORAN_ARTIKEL_%d_%s.pdf", siteID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func exportSafe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func exportDateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func exportClip(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func exportFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
