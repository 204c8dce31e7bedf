package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
	"cms/internal/repositories"
	"cms/internal/utils"
)

// ArticleService mengelola artikel per site: listing, detail, mutasi dan
// alur status editorial.
type ArticleService struct {
	Repo      repositories.ArticleRepository
	Audit     AuditService
	RequestID string
}

// ArticleInput carries the create payload after binding.
type ArticleInput struct {
	ChannelID int64  `json:"channelId"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Status    string `json:"status"`
}

func (s ArticleService) List(rc domain.RequestContext, spec query.Spec) (query.Result[models.Article], error) {
	rows, total, err := s.Repo.List(scopeOf(rc.SiteID), spec)
	if err != nil {
		return query.Result[models.Article]{}, domain.InternalError{Msg: "gagal mengambil artikel", Err: err}
	}
	return query.Assemble(rows, spec.Page, spec.PageSize, total), nil
}

// Get loads one article. countView bumps the read counter best-effort.
func (s ArticleService) Get(rc domain.RequestContext, id int64, countView bool) (models.Article, error) {
	scope := scopeOf(rc.SiteID)
	a, err := s.Repo.GetByID(scope, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Article{}, domain.NotFoundError{Resource: "artikel", Err: err}
	}
	if err != nil {
		return models.Article{}, domain.InternalError{Msg: "gagal mengambil artikel", Err: err}
	}
	if countView {
		if err := s.Repo.IncrementViews(scope, id); err != nil {
			utils.LogError(s.RequestID, "articles", "increment_views", err)
		} else {
			a.Views++
		}
	}
	return a, nil
}

func (s ArticleService) Create(rc domain.RequestContext, in ArticleInput) (models.Article, error) {
	// judul dirapikan dulu: spasi ganda sering ikut saat copy-paste
	title := utils.NormalizeSpace(in.Title)
	if title == "" {
		return models.Article{}, domain.ValidationError{Field: "title", Msg: "wajib diisi"}
	}
	status := normalizeStatus(in.Status, domain.StatusDraft)
	if !editorialStatuses[status] {
		return models.Article{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}

	a := models.Article{
		SiteID:    int64(rc.SiteID),
		ChannelID: in.ChannelID,
		AuthorID:  int64(rc.UserID),
		Title:     title,
		Slug:      utils.Slugify(title),
		Summary:   utils.TrimOrEmpty(in.Summary),
		Body:      in.Body,
		Status:    status,
	}
	if status == string(domain.StatusPublished) {
		a.PublishedAt = utils.FormatDateTime(utils.NowUTC())
	}

	id, err := s.Repo.Insert(a)
	if err != nil {
		if isDuplicate(err) {
			return models.Article{}, domain.ConflictError{Resource: "artikel", Msg: "slug sudah terpakai", Err: err}
		}
		return models.Article{}, domain.InternalError{Msg: "gagal menyimpan artikel", Err: err}
	}

	utils.LogEvent(s.RequestID, "articles", "create", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "article.create", "articles", id, title)
	return s.Get(rc, id, false)
}

// UpdatePartial applies a key-presence patch. Unknown statuses are rejected
// before anything touches the database.
func (s ArticleService) UpdatePartial(rc domain.RequestContext, id int64, rawJSON []byte) (models.Article, error) {
	var peek struct {
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(rawJSON, &peek); err != nil {
		return models.Article{}, domain.ValidationError{Msg: "payload tidak valid", Err: err}
	}
	if peek.Status != nil && strings.TrimSpace(*peek.Status) != "" {
		if !editorialStatuses[strings.ToUpper(strings.TrimSpace(*peek.Status))] {
			return models.Article{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
		}
	}

	a, err := s.Repo.UpdatePartial(scopeOf(rc.SiteID), id, rawJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Article{}, domain.NotFoundError{Resource: "artikel", Err: err}
	}
	if err != nil {
		if isDuplicate(err) {
			return models.Article{}, domain.ConflictError{Resource: "artikel", Msg: "slug sudah terpakai", Err: err}
		}
		return models.Article{}, domain.InternalError{Msg: "gagal update artikel", Err: err}
	}

	utils.LogEvent(s.RequestID, "articles", "update", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "article.update", "articles", id, "")
	return a, nil
}

func (s ArticleService) Delete(rc domain.RequestContext, id int64) error {
	err := s.Repo.SoftDelete(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "artikel", Err: err}
	}
	if err != nil {
		return domain.InternalError{Msg: "gagal hapus artikel", Err: err}
	}

	utils.LogEvent(s.RequestID, "articles", "delete", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "article.delete", "articles", id, "")
	return nil
}
