package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cms/internal/cache"
	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
	"cms/internal/repositories"
	"cms/internal/utils"
)

// activePromotionsTTL is short: the active set flips on wall-clock window
// edges that no write invalidates.
const activePromotionsTTL = time.Minute

// PromotionService mengelola banner/kampanye per site dengan jendela aktif.
type PromotionService struct {
	Repo      repositories.PromotionRepository
	Cache     cache.Cache
	Audit     AuditService
	RequestID string

	// Now is a test seam; zero value means wall clock.
	Now func() time.Time
}

// PromotionInput carries the create payload after binding.
type PromotionInput struct {
	Title    string `json:"title"`
	Banner   string `json:"banner"`
	LinkURL  string `json:"linkUrl"`
	Priority int    `json:"priority"`
	Status   string `json:"status"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

func (s PromotionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s PromotionService) List(rc domain.RequestContext, spec query.Spec) (query.Result[models.Promotion], error) {
	rows, total, err := s.Repo.List(scopeOf(rc.SiteID), spec)
	if err != nil {
		return query.Result[models.Promotion]{}, domain.InternalError{Msg: "gagal mengambil promosi", Err: err}
	}
	return query.Assemble(rows, spec.Page, spec.PageSize, total), nil
}

func (s PromotionService) Get(rc domain.RequestContext, id int64) (models.Promotion, error) {
	p, err := s.Repo.GetByID(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Promotion{}, domain.NotFoundError{Resource: "promosi", Err: err}
	}
	if err != nil {
		return models.Promotion{}, domain.InternalError{Msg: "gagal mengambil promosi", Err: err}
	}
	return p, nil
}

// Active serves the promotions whose window covers now, cached per site.
func (s PromotionService) Active(rc domain.RequestContext) ([]models.Promotion, error) {
	key := cache.Key(int64(rc.SiteID), "promotions", "active")

	var cached []models.Promotion
	if err := s.Cache.Get(context.Background(), key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		utils.LogError(s.RequestID, "promotions", "active_cache_get", err)
	}

	list, err := s.Repo.ListActive(scopeOf(rc.SiteID), utils.FormatDateTime(s.now()))
	if err != nil {
		return nil, domain.InternalError{Msg: "gagal mengambil promosi", Err: err}
	}

	if err := s.Cache.Set(context.Background(), key, list, activePromotionsTTL); err != nil {
		utils.LogError(s.RequestID, "promotions", "active_cache_set", err)
	}
	return list, nil
}

func (s PromotionService) Create(rc domain.RequestContext, in PromotionInput) (models.Promotion, error) {
	title := utils.TrimOrEmpty(in.Title)
	if title == "" {
		return models.Promotion{}, domain.ValidationError{Field: "title", Msg: "wajib diisi"}
	}
	status := normalizeStatus(in.Status, domain.StatusActive)
	if !simpleStatuses[status] {
		return models.Promotion{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}
	startsAt, endsAt, err := validateWindow(in.StartsAt, in.EndsAt)
	if err != nil {
		return models.Promotion{}, err
	}

	p := models.Promotion{
		SiteID:   int64(rc.SiteID),
		Title:    title,
		Banner:   utils.TrimOrEmpty(in.Banner),
		LinkURL:  utils.TrimOrEmpty(in.LinkURL),
		Priority: in.Priority,
		Status:   status,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}

	id, err := s.Repo.Insert(p)
	if err != nil {
		return models.Promotion{}, domain.InternalError{Msg: "gagal menyimpan promosi", Err: err}
	}

	s.invalidateActive(rc)
	utils.LogEvent(s.RequestID, "promotions", "create", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "promotion.create", "promotions", id, title)
	return s.Get(rc, id)
}

func (s PromotionService) Update(rc domain.RequestContext, id int64, upd models.PromotionUpdate) (models.Promotion, error) {
	if upd.Status != nil && utils.TrimOrEmpty(*upd.Status) != "" {
		if !simpleStatuses[normalizeStatus(*upd.Status, domain.StatusActive)] {
			return models.Promotion{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
		}
	}
	if upd.StartsAt != nil || upd.EndsAt != nil {
		existing, err := s.Get(rc, id)
		if err != nil {
			return models.Promotion{}, err
		}
		starts := existing.StartsAt
		ends := existing.EndsAt
		if upd.StartsAt != nil {
			starts = *upd.StartsAt
		}
		if upd.EndsAt != nil {
			ends = *upd.EndsAt
		}
		if _, _, err := validateWindow(starts, ends); err != nil {
			return models.Promotion{}, err
		}
	}

	p, err := s.Repo.Update(scopeOf(rc.SiteID), id, upd)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Promotion{}, domain.NotFoundError{Resource: "promosi", Err: err}
	}
	if err != nil {
		return models.Promotion{}, domain.InternalError{Msg: "gagal update promosi", Err: err}
	}

	s.invalidateActive(rc)
	utils.LogEvent(s.RequestID, "promotions", "update", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "promotion.update", "promotions", id, "")
	return p, nil
}

func (s PromotionService) Delete(rc domain.RequestContext, id int64) error {
	err := s.Repo.SoftDelete(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "promosi", Err: err}
	}
	if err != nil {
		return domain.InternalError{Msg: "gagal hapus promosi", Err: err}
	}

	s.invalidateActive(rc)
	utils.LogEvent(s.RequestID, "promotions", "delete", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "promotion.delete", "promotions", id, "")
	return nil
}

func (s PromotionService) invalidateActive(rc domain.RequestContext) {
	key := cache.Key(int64(rc.SiteID), "promotions", "active")
	if err := s.Cache.Delete(context.Background(), key); err != nil {
		utils.LogError(s.RequestID, "promotions", "active_cache_delete", err)
	}
}

// validateWindow checks "YYYY-MM-DD HH:MM:SS" bounds and their order.
// Either side may be empty (open window).
func validateWindow(startsAt, endsAt string) (string, string, error) {
	starts := utils.TrimOrEmpty(startsAt)
	ends := utils.TrimOrEmpty(endsAt)

	var startT, endT time.Time
	var err error
	if starts != "" {
		if startT, err = utils.ParseDateTime(starts); err != nil {
			return "", "", domain.ValidationError{Field: "startsAt", Msg: "format harus YYYY-MM-DD HH:MM:SS", Err: err}
		}
	}
	if ends != "" {
		if endT, err = utils.ParseDateTime(ends); err != nil {
			return "", "", domain.ValidationError{Field: "endsAt", Msg: "format harus YYYY-MM-DD HH:MM:SS", Err: err}
		}
	}
	if starts != "" && ends != "" && endT.Before(startT) {
		return "", "", domain.ValidationError{Field: "endsAt", Msg: "harus setelah startsAt"}
	}
	return starts, ends, nil
}
