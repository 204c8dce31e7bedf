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

// channelTreeTTL bounds how stale a cached navigation tree may get when an
// invalidation is lost.
const channelTreeTTL = 5 * time.Minute

// ChannelService mengelola channel/navigasi per site berikut pohon
// turunannya yang di-cache.
type ChannelService struct {
	Repo      repositories.ChannelRepository
	Cache     cache.Cache
	Audit     AuditService
	RequestID string
}

// ChannelInput carries the create payload after binding.
type ChannelInput struct {
	ParentID int64  `json:"parentId"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Status   string `json:"status"`
}

func (s ChannelService) List(rc domain.RequestContext, spec query.Spec) (query.Result[models.Channel], error) {
	rows, total, err := s.Repo.List(scopeOf(rc.SiteID), spec)
	if err != nil {
		return query.Result[models.Channel]{}, domain.InternalError{Msg: "gagal mengambil channel", Err: err}
	}
	return query.Assemble(rows, spec.Page, spec.PageSize, total), nil
}

func (s ChannelService) Get(rc domain.RequestContext, id int64) (models.Channel, error) {
	ch, err := s.Repo.GetByID(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Channel{}, domain.NotFoundError{Resource: "channel", Err: err}
	}
	if err != nil {
		return models.Channel{}, domain.InternalError{Msg: "gagal mengambil channel", Err: err}
	}
	return ch, nil
}

// Tree serves the two-level ACTIVE navigation tree, cached per site.
func (s ChannelService) Tree(rc domain.RequestContext) ([]models.ChannelNode, error) {
	key := cache.Key(int64(rc.SiteID), "channels", "tree")

	var cached []models.ChannelNode
	if err := s.Cache.Get(context.Background(), key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		utils.LogError(s.RequestID, "channels", "tree_cache_get", err)
	}

	list, err := s.Repo.ListActive(scopeOf(rc.SiteID))
	if err != nil {
		return nil, domain.InternalError{Msg: "gagal mengambil channel", Err: err}
	}
	tree := assembleChannelTree(list)

	if err := s.Cache.Set(context.Background(), key, tree, channelTreeTTL); err != nil {
		utils.LogError(s.RequestID, "channels", "tree_cache_set", err)
	}
	return tree, nil
}

func (s ChannelService) Create(rc domain.RequestContext, in ChannelInput) (models.Channel, error) {
	name := utils.TrimOrEmpty(in.Name)
	if name == "" {
		return models.Channel{}, domain.ValidationError{Field: "name", Msg: "wajib diisi"}
	}
	status := normalizeStatus(in.Status, domain.StatusActive)
	if !simpleStatuses[status] {
		return models.Channel{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}
	if in.ParentID > 0 {
		if _, err := s.Get(rc, in.ParentID); err != nil {
			return models.Channel{}, domain.ValidationError{Field: "parentId", Msg: "channel induk tidak ditemukan", Err: err}
		}
	}

	ch := models.Channel{
		SiteID:   int64(rc.SiteID),
		ParentID: in.ParentID,
		Name:     name,
		Slug:     utils.Slugify(name),
		Position: in.Position,
		Status:   status,
	}

	id, err := s.Repo.Insert(ch)
	if err != nil {
		if isDuplicate(err) {
			return models.Channel{}, domain.ConflictError{Resource: "channel", Msg: "slug sudah terpakai", Err: err}
		}
		return models.Channel{}, domain.InternalError{Msg: "gagal menyimpan channel", Err: err}
	}

	s.invalidateTree(rc)
	utils.LogEvent(s.RequestID, "channels", "create", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "channel.create", "channels", id, name)
	return s.Get(rc, id)
}

func (s ChannelService) Update(rc domain.RequestContext, id int64, upd models.ChannelUpdate) (models.Channel, error) {
	if upd.Status != nil && utils.TrimOrEmpty(*upd.Status) != "" {
		if !simpleStatuses[normalizeStatus(*upd.Status, domain.StatusActive)] {
			return models.Channel{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
		}
	}
	if upd.ParentID != nil && *upd.ParentID > 0 {
		parent, err := s.Get(rc, *upd.ParentID)
		if err != nil || parent.ID == id {
			return models.Channel{}, domain.ValidationError{Field: "parentId", Msg: "channel induk tidak valid", Err: err}
		}
	}

	ch, err := s.Repo.Update(scopeOf(rc.SiteID), id, upd)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Channel{}, domain.NotFoundError{Resource: "channel", Err: err}
	}
	if err != nil {
		return models.Channel{}, domain.InternalError{Msg: "gagal update channel", Err: err}
	}

	s.invalidateTree(rc)
	utils.LogEvent(s.RequestID, "channels", "update", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "channel.update", "channels", id, "")
	return ch, nil
}

func (s ChannelService) Delete(rc domain.RequestContext, id int64) error {
	err := s.Repo.SoftDelete(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "channel", Err: err}
	}
	if err != nil {
		return domain.InternalError{Msg: "gagal hapus channel", Err: err}
	}

	s.invalidateTree(rc)
	utils.LogEvent(s.RequestID, "channels", "delete", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "channel.delete", "channels", id, "")
	return nil
}

// invalidateTree drops the cached tree before the mutation returns, so the
// next read rebuilds from rows.
func (s ChannelService) invalidateTree(rc domain.RequestContext) {
	key := cache.Key(int64(rc.SiteID), "channels", "tree")
	if err := s.Cache.Delete(context.Background(), key); err != nil {
		utils.LogError(s.RequestID, "channels", "tree_cache_delete", err)
	}
}

// assembleChannelTree nests children under their parents. Rows arrive
// parents-first; anything deeper than one level or orphaned is dropped.
func assembleChannelTree(list []models.Channel) []models.ChannelNode {
	roots := []models.ChannelNode{}
	children := map[int64][]models.ChannelNode{}
	for _, ch := range list {
		node := models.ChannelNode{Channel: ch, Children: []models.ChannelNode{}}
		if ch.ParentID == 0 {
			roots = append(roots, node)
		} else {
			children[ch.ParentID] = append(children[ch.ParentID], node)
		}
	}
	for i := range roots {
		if kids, ok := children[roots[i].ID]; ok {
			roots[i].Children = kids
		}
	}
	return roots
}
