package services

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
)

func TestExportServiceArticlePDF(t *testing.T) {
	svc := ExportService{
		ArticleLoader: func(scope query.Scope, id int64) (models.Article, error) {
			return models.Article{
				ID:          id,
				SiteID:      scope.SiteID,
				Title:       "Kabar Terkini",
				Slug:        "kabar-terkini",
				Summary:     "Ringkasan singkat.",
				Body:        "Isi artikel.",
				Status:      "PUBLISHED",
				Views:       12,
				PublishedAt: "2025-05-01 08:00:00",
			}, nil
		},
	}

	rc := domain.RequestContext{UserID: 5, SiteID: 7, Role: domain.RoleEditor}
	pdf, filename, err := svc.ExportArticle(rc, 31)
	if err != nil {
		t.Fatalf("ExportArticle returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("ExportArticle returned empty data")
	}
	if !strings.HasPrefix(filename, "ARTIKEL_31_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestExportServiceArticleErrors(t *testing.T) {
	rc := domain.RequestContext{SiteID: 7}

	svc := ExportService{
		ArticleLoader: func(query.Scope, int64) (models.Article, error) {
			return models.Article{}, sql.ErrNoRows
		},
	}
	if _, _, err := svc.ExportArticle(rc, 99); !domain.IsNotFound(err) {
		t.Fatalf("missing row should map to not found, got %v", err)
	}

	// a broken connection is not a 404
	svc.ArticleLoader = func(query.Scope, int64) (models.Article, error) {
		return models.Article{}, errors.New("koneksi putus")
	}
	_, _, err := svc.ExportArticle(rc, 99)
	if !domain.IsInternal(err) {
		t.Fatalf("db failure should map to internal, got %v", err)
	}
	if domain.IsNotFound(err) {
		t.Fatalf("db failure must not read as not found: %v", err)
	}
}

func TestExportServiceListingPDF(t *testing.T) {
	var gotSpec query.Spec
	svc := ExportService{
		ListingLoader: func(scope query.Scope, spec query.Spec) ([]models.Article, int, error) {
			gotSpec = spec
			return []models.Article{
				{ID: 2, Title: "Kedua", Status: "DRAFT"},
				{ID: 1, Title: "Pertama", Status: "PUBLISHED", PublishedAt: "2025-05-01 08:00:00"},
			}, 2, nil
		},
	}

	rc := domain.RequestContext{UserID: 5, SiteID: 7, Role: domain.RoleEditor}
	pdf, filename, err := svc.ExportListing(rc, query.Spec{PageSize: 500})
	if err != nil {
		t.Fatalf("ExportListing returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("ExportListing returned empty data")
	}
	if gotSpec.PageSize != exportListingCap {
		t.Fatalf("oversized window must be capped, got %d", gotSpec.PageSize)
	}
}

func TestExportServiceListingEmpty(t *testing.T) {
	svc := ExportService{
		ListingLoader: func(query.Scope, query.Spec) ([]models.Article, int, error) {
			return nil, 0, nil
		},
	}

	rc := domain.RequestContext{SiteID: 7}
	pdf, _, err := svc.ExportListing(rc, query.Spec{})
	if err != nil {
		t.Fatalf("ExportListing returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty listing should still render a report")
	}
}
