package repositories

import (
	"database/sql"

	"cms/internal/config"
	intdb "cms/internal/db"
	"cms/internal/domain/models"
	"cms/internal/query"
)

// AuditFields maps API field names onto audit_logs columns. The table has
// no status column, so no exclusion term is ever emitted for it.
var AuditFields = &query.Registry{
	Entity: "audit_logs",
	Tenant: "site_id",
	Fields: map[string]query.Column{
		"actorId":   {Name: "actor_id", Kind: query.KindInt},
		"action":    {Name: "action", Kind: query.KindText},
		"entity":    {Name: "entity", Kind: query.KindText},
		"entityId":  {Name: "entity_id", Kind: query.KindInt},
		"detail":    {Name: "detail", Kind: query.KindText},
		"createdAt": {Name: "created_at", Kind: query.KindTime},
	},
}

// AuditRepository wraps DB access for the append-only audit trail.
type AuditRepository struct {
	DB *sql.DB
}

func (r AuditRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const auditSelect = `
	SELECT
		id,
		site_id,
		COALESCE(actor_id,0),
		action,
		entity,
		COALESCE(entity_id,0),
		COALESCE(detail,''),
		COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')
	FROM audit_logs`

// List returns one page of audit events matching spec inside scope.
func (r AuditRepository) List(scope query.Scope, spec query.Spec) ([]models.AuditEvent, int, error) {
	dbc := r.db()

	pred := query.BuildPredicate(AuditFields, scope, spec)

	var total int
	if err := dbc.QueryRow(`SELECT COUNT(*) FROM audit_logs`+pred.Clause(), pred.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pg := query.Paginate(spec.Page, spec.PageSize, total)

	stmt := auditSelect + pred.Clause()
	if ord, ok := query.ResolveSort(AuditFields, spec.Sort, spec.SortOrder); ok {
		stmt += ord.Clause()
	} else {
		stmt += " ORDER BY created_at DESC, id DESC"
	}
	stmt += " LIMIT ? OFFSET ?"

	args := append(append([]any{}, pred.Args...), pg.Limit, pg.Offset)
	rows, err := dbc.Query(stmt, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.AuditEvent{}
	for rows.Next() {
		var ev models.AuditEvent
		if err := rows.Scan(&ev.ID, &ev.SiteID, &ev.ActorID, &ev.Action, &ev.Entity, &ev.EntityID, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Insert appends one event. Deployments without the audit_logs table skip
// the write silently.
func (r AuditRepository) Insert(ev models.AuditEvent) error {
	dbc := r.db()
	if !intdb.HasTable(dbc, "audit_logs") {
		return nil
	}
	_, err := dbc.Exec(`
		INSERT INTO audit_logs (id, site_id, actor_id, action, entity, entity_id, detail, created_at)
		VALUES (?, ?, NULLIF(?,0), ?, ?, NULLIF(?,0), ?, NOW())
	`, ev.ID, ev.SiteID, ev.ActorID, ev.Action, ev.Entity, ev.EntityID, intdb.NullIfEmpty(ev.Detail))
	return err
}
