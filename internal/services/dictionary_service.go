package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cms/internal/cache"
	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
	"cms/internal/repositories"
	"cms/internal/utils"
)

const dictionaryGroupTTL = 5 * time.Minute

// DictionaryService mengelola entri kamus (label, badge, opsi) per site,
// dengan set aktif per group yang di-cache.
type DictionaryService struct {
	Repo      repositories.DictionaryRepository
	Cache     cache.Cache
	Audit     AuditService
	RequestID string
}

// DictionaryInput carries the create payload after binding.
type DictionaryInput struct {
	GroupKey  string `json:"groupKey"`
	ItemKey   string `json:"itemKey"`
	ItemValue string `json:"itemValue"`
	Position  int    `json:"position"`
	Status    string `json:"status"`
}

func (s DictionaryService) List(rc domain.RequestContext, spec query.Spec) (query.Result[models.Dictionary], error) {
	rows, total, err := s.Repo.List(scopeOf(rc.SiteID), spec)
	if err != nil {
		return query.Result[models.Dictionary]{}, domain.InternalError{Msg: "gagal mengambil kamus", Err: err}
	}
	return query.Assemble(rows, spec.Page, spec.PageSize, total), nil
}

func (s DictionaryService) Get(rc domain.RequestContext, id int64) (models.Dictionary, error) {
	d, err := s.Repo.GetByID(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dictionary{}, domain.NotFoundError{Resource: "entri kamus", Err: err}
	}
	if err != nil {
		return models.Dictionary{}, domain.InternalError{Msg: "gagal mengambil kamus", Err: err}
	}
	return d, nil
}

// ActiveGroup serves the ACTIVE entries of one group, cached per site and
// group.
func (s DictionaryService) ActiveGroup(rc domain.RequestContext, groupKey string) ([]models.Dictionary, error) {
	group := strings.ToLower(utils.TrimOrEmpty(groupKey))
	if group == "" {
		return nil, domain.ValidationError{Field: "group", Msg: "wajib diisi"}
	}
	key := cache.Key(int64(rc.SiteID), "dictionaries", group)

	var cached []models.Dictionary
	if err := s.Cache.Get(context.Background(), key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		utils.LogError(s.RequestID, "dictionaries", "group_cache_get", err)
	}

	list, err := s.Repo.ListActiveGroup(scopeOf(rc.SiteID), group)
	if err != nil {
		return nil, domain.InternalError{Msg: "gagal mengambil kamus", Err: err}
	}

	if err := s.Cache.Set(context.Background(), key, list, dictionaryGroupTTL); err != nil {
		utils.LogError(s.RequestID, "dictionaries", "group_cache_set", err)
	}
	return list, nil
}

func (s DictionaryService) Create(rc domain.RequestContext, in DictionaryInput) (models.Dictionary, error) {
	group := strings.ToLower(utils.TrimOrEmpty(in.GroupKey))
	item := strings.ToLower(utils.TrimOrEmpty(in.ItemKey))
	if group == "" {
		return models.Dictionary{}, domain.ValidationError{Field: "groupKey", Msg: "wajib diisi"}
	}
	if item == "" {
		return models.Dictionary{}, domain.ValidationError{Field: "itemKey", Msg: "wajib diisi"}
	}
	status := normalizeStatus(in.Status, domain.StatusActive)
	if !simpleStatuses[status] {
		return models.Dictionary{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}

	d := models.Dictionary{
		SiteID:    int64(rc.SiteID),
		GroupKey:  group,
		ItemKey:   item,
		ItemValue: utils.TrimOrEmpty(in.ItemValue),
		Position:  in.Position,
		Status:    status,
	}

	id, err := s.Repo.Insert(d)
	if err != nil {
		if isDuplicate(err) {
			return models.Dictionary{}, domain.ConflictError{Resource: "entri kamus", Msg: "group dan key sudah terdaftar", Err: err}
		}
		return models.Dictionary{}, domain.InternalError{Msg: "gagal menyimpan kamus", Err: err}
	}

	s.invalidateGroups(rc)
	utils.LogEvent(s.RequestID, "dictionaries", "create", fmt.Sprintf("id=%d group=%s site_id=%d", id, group, rc.SiteID))
	s.Audit.Record(rc, "dictionary.create", "dictionaries", id, group+"/"+item)
	return s.Get(rc, id)
}

func (s DictionaryService) Update(rc domain.RequestContext, id int64, upd models.DictionaryUpdate) (models.Dictionary, error) {
	if upd.Status != nil && utils.TrimOrEmpty(*upd.Status) != "" {
		if !simpleStatuses[normalizeStatus(*upd.Status, domain.StatusActive)] {
			return models.Dictionary{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
		}
	}

	d, err := s.Repo.Update(scopeOf(rc.SiteID), id, upd)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dictionary{}, domain.NotFoundError{Resource: "entri kamus", Err: err}
	}
	if err != nil {
		return models.Dictionary{}, domain.InternalError{Msg: "gagal update kamus", Err: err}
	}

	s.invalidateGroups(rc)
	utils.LogEvent(s.RequestID, "dictionaries", "update", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "dictionary.update", "dictionaries", id, "")
	return d, nil
}

func (s DictionaryService) Delete(rc domain.RequestContext, id int64) error {
	err := s.Repo.SoftDelete(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "entri kamus", Err: err}
	}
	if err != nil {
		return domain.InternalError{Msg: "gagal hapus kamus", Err: err}
	}

	s.invalidateGroups(rc)
	utils.LogEvent(s.RequestID, "dictionaries", "delete", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "dictionary.delete", "dictionaries", id, "")
	return nil
}

// invalidateGroups drops every cached group of the site in one sweep; a
// moved entry can leave two groups stale at once.
func (s DictionaryService) invalidateGroups(rc domain.RequestContext) {
	prefix := cache.Prefix(int64(rc.SiteID), "dictionaries")
	if err := s.Cache.DeleteByPrefix(context.Background(), prefix); err != nil {
		utils.LogError(s.RequestID, "dictionaries", "group_cache_delete", err)
	}
}
