package repositories

import (
	"database/sql"
	"strings"

	"cms/internal/config"
	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
)

// DictionaryFields maps API field names onto dictionaries columns.
var DictionaryFields = &query.Registry{
	Entity: "dictionaries",
	Tenant: "site_id",
	Status: "status",
	Fields: map[string]query.Column{
		"id":        {Name: "id", Kind: query.KindInt},
		"groupKey":  {Name: "group_key", Kind: query.KindText},
		"itemKey":   {Name: "item_key", Kind: query.KindText},
		"itemValue": {Name: "item_value", Kind: query.KindText},
		"position":  {Name: "position", Kind: query.KindInt},
		"status":    {Name: "status", Kind: query.KindText},
		"createdAt": {Name: "created_at", Kind: query.KindTime},
		"updatedAt": {Name: "updated_at", Kind: query.KindTime},
	},
}

// DictionaryRepository wraps DB access for dictionaries.
type DictionaryRepository struct {
	DB *sql.DB
}

func (r DictionaryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const dictionarySelect = `
	SELECT
		id,
		site_id,
		group_key,
		item_key,
		COALESCE(item_value,''),
		COALESCE(position,0),
		status,
		COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
		COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')
	FROM dictionaries`

func scanDictionary(row interface{ Scan(...any) error }, d *models.Dictionary) error {
	return row.Scan(
		&d.ID,
		&d.SiteID,
		&d.GroupKey,
		&d.ItemKey,
		&d.ItemValue,
		&d.Position,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

// List returns one page of dictionary entries matching spec inside scope.
func (r DictionaryRepository) List(scope query.Scope, spec query.Spec) ([]models.Dictionary, int, error) {
	dbc := r.db()

	pred := query.BuildPredicate(DictionaryFields, scope, spec)

	var total int
	if err := dbc.QueryRow(`SELECT COUNT(*) FROM dictionaries`+pred.Clause(), pred.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pg := query.Paginate(spec.Page, spec.PageSize, total)

	stmt := dictionarySelect + pred.Clause()
	if ord, ok := query.ResolveSort(DictionaryFields, spec.Sort, spec.SortOrder); ok {
		stmt += ord.Clause()
	} else {
		stmt += " ORDER BY group_key ASC, position ASC, id ASC"
	}
	stmt += " LIMIT ? OFFSET ?"

	args := append(append([]any{}, pred.Args...), pg.Limit, pg.Offset)
	rows, err := dbc.Query(stmt, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Dictionary{}
	for rows.Next() {
		var d models.Dictionary
		if err := scanDictionary(rows, &d); err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActiveGroup returns the ACTIVE entries of one group in display order.
func (r DictionaryRepository) ListActiveGroup(scope query.Scope, groupKey string) ([]models.Dictionary, error) {
	rows, err := r.db().Query(dictionarySelect+` WHERE site_id=? AND group_key=? AND status=? ORDER BY position ASC, id ASC`,
		scope.SiteID, groupKey, string(domain.StatusActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Dictionary{}
	for rows.Next() {
		var d models.Dictionary
		if err := scanDictionary(rows, &d); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// GetByID loads one entry inside scope. Soft-deleted rows read as absent.
func (r DictionaryRepository) GetByID(scope query.Scope, id int64) (models.Dictionary, error) {
	if id <= 0 {
		return models.Dictionary{}, sql.ErrNoRows
	}
	var d models.Dictionary
	row := r.db().QueryRow(dictionarySelect+` WHERE id=? AND site_id=? AND status<>? LIMIT 1`,
		id, scope.SiteID, scope.Deleted)
	if err := scanDictionary(row, &d); err != nil {
		return models.Dictionary{}, err
	}
	return d, nil
}

// Insert stores a new entry and returns its id.
func (r DictionaryRepository) Insert(d models.Dictionary) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO dictionaries (site_id, group_key, item_key, item_value, position, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, d.SiteID, d.GroupKey, d.ItemKey, d.ItemValue, d.Position, d.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies the non-nil fields of upd.
func (r DictionaryRepository) Update(scope query.Scope, id int64, upd models.DictionaryUpdate) (models.Dictionary, error) {
	existing, err := r.GetByID(scope, id)
	if err != nil {
		return models.Dictionary{}, err
	}

	sets := []string{}
	args := []any{}

	if upd.ItemValue != nil {
		sets = append(sets, "item_value=?")
		args = append(args, *upd.ItemValue)
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
	if _, err := r.db().Exec(`UPDATE dictionaries SET `+strings.Join(sets, ", ")+` WHERE id=? AND site_id=?`, args...); err != nil {
		return models.Dictionary{}, err
	}
	return r.GetByID(scope, id)
}

// SoftDelete marks the entry deleted.
func (r DictionaryRepository) SoftDelete(scope query.Scope, id int64) error {
	res, err := r.db().Exec(`UPDATE dictionaries SET status=?, updated_at=NOW() WHERE id=? AND site_id=? AND status<>?`,
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
