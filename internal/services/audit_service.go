package services

import (
	"fmt"

	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
	"cms/internal/repositories"
	"cms/internal/utils"

	"github.com/google/uuid"
)

// AuditService menulis dan membaca jejak perubahan per site.
type AuditService struct {
	Repo      repositories.AuditRepository
	RequestID string
}

// Record appends one event. Failures are logged, never surfaced; a broken
// trail must not block the write that triggered it.
func (s AuditService) Record(rc domain.RequestContext, action, entity string, entityID int64, detail string) {
	ev := models.AuditEvent{
		ID:       uuid.NewString(),
		SiteID:   int64(rc.SiteID),
		ActorID:  int64(rc.UserID),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	}
	if err := s.Repo.Insert(ev); err != nil {
		utils.LogError(s.RequestID, "audit", "record", err)
		return
	}
	utils.LogEvent(s.RequestID, "audit", "record", fmt.Sprintf("action=%s entity=%s entity_id=%d", action, entity, entityID))
}

// List returns one page of the trail.
func (s AuditService) List(rc domain.RequestContext, spec query.Spec) (query.Result[models.AuditEvent], error) {
	rows, total, err := s.Repo.List(scopeOf(rc.SiteID), spec)
	if err != nil {
		return query.Result[models.AuditEvent]{}, domain.InternalError{Msg: "gagal mengambil audit log", Err: err}
	}
	return query.Assemble(rows, spec.Page, spec.PageSize, total), nil
}
