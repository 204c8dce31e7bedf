package repositories

import (
	"database/sql"
	"strings"

	"cms/internal/config"
	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
)

// ChannelFields maps API field names onto channels columns.
var ChannelFields = &query.Registry{
	Entity: "channels",
	Tenant: "site_id",
	Status: "status",
	Fields: map[string]query.Column{
		"id":        {Name: "id", Kind: query.KindInt},
		"parentId":  {Name: "parent_id", Kind: query.KindInt},
		"name":      {Name: "name", Kind: query.KindText},
		"slug":      {Name: "slug", Kind: query.KindText},
		"position":  {Name: "position", Kind: query.KindInt},
		"status":    {Name: "status", Kind: query.KindText},
		"createdAt": {Name: "created_at", Kind: query.KindTime},
		"updatedAt": {Name: "updated_at", Kind: query.KindTime},
	},
}

// ChannelRepository wraps DB access for channels.
type ChannelRepository struct {
	DB *sql.DB
}

func (r ChannelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const channelSelect = `
	SELECT
		id,
		site_id,
		COALESCE(parent_id,0),
		name,
		COALESCE(slug,''),
		COALESCE(position,0),
		status,
		COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
		COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')
	FROM channels`

func scanChannel(row interface{ Scan(...any) error }, ch *models.Channel) error {
	return row.Scan(
		&ch.ID,
		&ch.SiteID,
		&ch.ParentID,
		&ch.Name,
		&ch.Slug,
		&ch.Position,
		&ch.Status,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)
}

// List returns one page of channels matching spec inside scope plus the
// total match count.
func (r ChannelRepository) List(scope query.Scope, spec query.Spec) ([]models.Channel, int, error) {
	dbc := r.db()

	pred := query.BuildPredicate(ChannelFields, scope, spec)

	var total int
	if err := dbc.QueryRow(`SELECT COUNT(*) FROM channels`+pred.Clause(), pred.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pg := query.Paginate(spec.Page, spec.PageSize, total)

	stmt := channelSelect + pred.Clause()
	if ord, ok := query.ResolveSort(ChannelFields, spec.Sort, spec.SortOrder); ok {
		stmt += ord.Clause()
	} else {
		stmt += " ORDER BY position ASC, id ASC"
	}
	stmt += " LIMIT ? OFFSET ?"

	args := append(append([]any{}, pred.Args...), pg.Limit, pg.Offset)
	rows, err := dbc.Query(stmt, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Channel{}
	for rows.Next() {
		var ch models.Channel
		if err := scanChannel(rows, &ch); err != nil {
			return nil, 0, err
		}
		list = append(list, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActive returns every ACTIVE channel in scope, parents before children,
// ready for tree assembly.
func (r ChannelRepository) ListActive(scope query.Scope) ([]models.Channel, error) {
	rows, err := r.db().Query(channelSelect+` WHERE site_id=? AND status=? ORDER BY parent_id ASC, position ASC, id ASC`,
		scope.SiteID, string(domain.StatusActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Channel{}
	for rows.Next() {
		var ch models.Channel
		if err := scanChannel(rows, &ch); err != nil {
			return nil, err
		}
		list = append(list, ch)
	}
	return list, rows.Err()
}

// GetByID loads one channel inside scope. Soft-deleted rows read as absent.
func (r ChannelRepository) GetByID(scope query.Scope, id int64) (models.Channel, error) {
	if id <= 0 {
		return models.Channel{}, sql.ErrNoRows
	}
	var ch models.Channel
	row := r.db().QueryRow(channelSelect+` WHERE id=? AND site_id=? AND status<>? LIMIT 1`,
		id, scope.SiteID, scope.Deleted)
	if err := scanChannel(row, &ch); err != nil {
		return models.Channel{}, err
	}
	return ch, nil
}

// Insert stores a new channel and returns its id.
func (r ChannelRepository) Insert(ch models.Channel) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO channels (site_id, parent_id, name, slug, position, status, created_at, updated_at)
		VALUES (?, NULLIF(?,0), ?, ?, ?, ?, NOW(), NOW())
	`, ch.SiteID, ch.ParentID, ch.Name, ch.Slug, ch.Position, ch.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies the non-nil fields of upd.
func (r ChannelRepository) Update(scope query.Scope, id int64, upd models.ChannelUpdate) (models.Channel, error) {
	existing, err := r.GetByID(scope, id)
	if err != nil {
		return models.Channel{}, err
	}

	sets := []string{}
	args := []any{}

	if upd.ParentID != nil {
		sets = append(sets, "parent_id=NULLIF(?,0)")
		args = append(args, *upd.ParentID)
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.Position != nil {
		sets = append(sets, "position=?")
		args = append(args, *upd.Position)
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
	if _, err := r.db().Exec(`UPDATE channels SET `+strings.Join(sets, ", ")+` WHERE id=? AND site_id=?`, args...); err != nil {
		return models.Channel{}, err
	}
	return r.GetByID(scope, id)
}

// SoftDelete marks the channel deleted.
func (r ChannelRepository) SoftDelete(scope query.Scope, id int64) error {
	res, err := r.db().Exec(`UPDATE channels SET status=?, updated_at=NOW() WHERE id=? AND site_id=? AND status<>?`,
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
