package repositories

import (
	"database/sql"
	"strings"

	"cms/internal/config"
	intdb "cms/internal/db"
	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
)

// PromotionFields maps API field names onto promotions columns.
var PromotionFields = &query.Registry{
	Entity: "promotions",
	Tenant: "site_id",
	Status: "status",
	Fields: map[string]query.Column{
		"id":        {Name: "id", Kind: query.KindInt},
		"title":     {Name: "title", Kind: query.KindText},
		"priority":  {Name: "priority", Kind: query.KindInt},
		"status":    {Name: "status", Kind: query.KindText},
		"startsAt":  {Name: "starts_at", Kind: query.KindTime},
		"endsAt":    {Name: "ends_at", Kind: query.KindTime},
		"createdAt": {Name: "created_at", Kind: query.KindTime},
	},
}

// PromotionRepository wraps DB access for promotions. banner, link_url and
// priority arrived in later migrations, so writes probe for them first.
type PromotionRepository struct {
	DB *sql.DB
}

func (r PromotionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const promotionSelect = `
	SELECT
		id,
		site_id,
		title,
		COALESCE(banner,''),
		COALESCE(link_url,''),
		COALESCE(priority,0),
		status,
		COALESCE(DATE_FORMAT(starts_at,'%Y-%m-%d %H:%i:%s'),''),
		COALESCE(DATE_FORMAT(ends_at,'%Y-%m-%d %H:%i:%s'),''),
		COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
		COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')
	FROM promotions`

func scanPromotion(row interface{ Scan(...any) error }, p *models.Promotion) error {
	return row.Scan(
		&p.ID,
		&p.SiteID,
		&p.Title,
		&p.Banner,
		&p.LinkURL,
		&p.Priority,
		&p.Status,
		&p.StartsAt,
		&p.EndsAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// List returns one page of promotions matching spec inside scope.
func (r PromotionRepository) List(scope query.Scope, spec query.Spec) ([]models.Promotion, int, error) {
	dbc := r.db()

	pred := query.BuildPredicate(PromotionFields, scope, spec)

	var total int
	if err := dbc.QueryRow(`SELECT COUNT(*) FROM promotions`+pred.Clause(), pred.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pg := query.Paginate(spec.Page, spec.PageSize, total)

	stmt := promotionSelect + pred.Clause()
	if ord, ok := query.ResolveSort(PromotionFields, spec.Sort, spec.SortOrder); ok {
		stmt += ord.Clause()
	} else {
		stmt += " ORDER BY priority DESC, id DESC"
	}
	stmt += " LIMIT ? OFFSET ?"

	args := append(append([]any{}, pred.Args...), pg.Limit, pg.Offset)
	rows, err := dbc.Query(stmt, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Promotion{}
	for rows.Next() {
		var p models.Promotion
		if err := scanPromotion(rows, &p); err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActive returns ACTIVE promotions whose window covers now, highest
// priority first. The window terms live here, not in the engine: an empty
// side is stored as NULL and means open, so each bound only applies when
// its column is set.
func (r PromotionRepository) ListActive(scope query.Scope, now string) ([]models.Promotion, error) {
	pred := query.BuildPredicate(PromotionFields, scope, query.Spec{
		Filters: map[string]any{"status": string(domain.StatusActive)},
	})

	stmt := promotionSelect + pred.Clause() +
		` AND (starts_at IS NULL OR starts_at<=?) AND (ends_at IS NULL OR ends_at>=?)` +
		` ORDER BY priority DESC, id DESC LIMIT 50`
	args := append(append([]any{}, pred.Args...), now, now)

	rows, err := r.db().Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Promotion{}
	for rows.Next() {
		var p models.Promotion
		if err := scanPromotion(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// GetByID loads one promotion inside scope. Soft-deleted rows read as
// absent.
func (r PromotionRepository) GetByID(scope query.Scope, id int64) (models.Promotion, error) {
	if id <= 0 {
		return models.Promotion{}, sql.ErrNoRows
	}
	var p models.Promotion
	row := r.db().QueryRow(promotionSelect+` WHERE id=? AND site_id=? AND status<>? LIMIT 1`,
		id, scope.SiteID, scope.Deleted)
	if err := scanPromotion(row, &p); err != nil {
		return models.Promotion{}, err
	}
	return p, nil
}

// Insert stores a new promotion and returns its id. Optional columns are
// skipped when the schema does not carry them yet.
func (r PromotionRepository) Insert(p models.Promotion) (int64, error) {
	dbc := r.db()

	cols := []string{"site_id", "title", "status"}
	vals := []any{p.SiteID, p.Title, p.Status}

	add := func(col string, val any) {
		if intdb.HasColumn(dbc, "promotions", col) {
			cols = append(cols, col)
			vals = append(vals, val)
		}
	}

	add("banner", intdb.NullIfEmpty(p.Banner))
	add("link_url", intdb.NullIfEmpty(p.LinkURL))
	add("priority", p.Priority)
	add("starts_at", intdb.NullIfEmpty(p.StartsAt))
	add("ends_at", intdb.NullIfEmpty(p.EndsAt))

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	res, err := dbc.Exec(`INSERT INTO promotions (`+strings.Join(cols, ", ")+`, created_at, updated_at) VALUES (`+placeholders+`, NOW(), NOW())`, vals...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies the non-nil fields of upd.
func (r PromotionRepository) Update(scope query.Scope, id int64, upd models.PromotionUpdate) (models.Promotion, error) {
	existing, err := r.GetByID(scope, id)
	if err != nil {
		return models.Promotion{}, err
	}

	dbc := r.db()
	sets := []string{}
	args := []any{}

	add := func(column string, val any) {
		if intdb.HasColumn(dbc, "promotions", column) {
			sets = append(sets, column+"=?")
			args = append(args, val)
		}
	}

	if upd.Title != nil && strings.TrimSpace(*upd.Title) != "" {
		sets = append(sets, "title=?")
		args = append(args, strings.TrimSpace(*upd.Title))
	}
	if upd.Banner != nil {
		add("banner", intdb.NullIfEmpty(*upd.Banner))
	}
	if upd.LinkURL != nil {
		add("link_url", intdb.NullIfEmpty(*upd.LinkURL))
	}
	if upd.Priority != nil {
		add("priority", *upd.Priority)
	}
	if upd.StartsAt != nil {
		add("starts_at", intdb.NullIfEmpty(*upd.StartsAt))
	}
	if upd.EndsAt != nil {
		add("ends_at", intdb.NullIfEmpty(*upd.EndsAt))
	}
	if upd.Status != nil && strings.TrimSpace(*upd.Status) != "" {
		sets = append(sets, "status=?")
		args = append(args, strings.ToUpper(strings.TrimSpace(*upd.Status)))
	}

	if len(sets) == 0 {
		return existing, nil
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id, scope.SiteID)
	if _, err := dbc.Exec(`UPDATE promotions SET `+strings.Join(sets, ", ")+` WHERE id=? AND site_id=?`, args...); err != nil {
		return models.Promotion{}, err
	}
	return r.GetByID(scope, id)
}

// SoftDelete marks the promotion deleted.
func (r PromotionRepository) SoftDelete(scope query.Scope, id int64) error {
	res, err := r.db().Exec(`UPDATE promotions SET status=?, updated_at=NOW() WHERE id=? AND site_id=? AND status<>?`,
		scope.Deleted, id, scope.SiteID, scope.Deleted)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
