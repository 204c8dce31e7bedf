package repositories

import (
	"database/sql"
	"strings"

	"cms/internal/config"
	"cms/internal/domain/models"
	"cms/internal/query"
)

// UserFields maps API field names onto users columns. The password hash is
// deliberately absent so it can never be filtered, searched or sorted on.
var UserFields = &query.Registry{
	Entity: "users",
	Tenant: "site_id",
	Status: "status",
	Fields: map[string]query.Column{
		"id":        {Name: "id", Kind: query.KindInt},
		"name":      {Name: "name", Kind: query.KindText},
		"username":  {Name: "username", Kind: query.KindText},
		"email":     {Name: "email", Kind: query.KindText},
		"role":      {Name: "role", Kind: query.KindText},
		"status":    {Name: "status", Kind: query.KindText},
		"createdAt": {Name: "created_at", Kind: query.KindTime},
	},
}

// UserRepository wraps DB access for users.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const userSelect = `
	SELECT
		id,
		site_id,
		name,
		username,
		COALESCE(email,''),
		COALESCE(password_hash,''),
		role,
		status,
		COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
		COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')
	FROM users`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(
		&u.ID,
		&u.SiteID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

// List returns one page of users matching spec inside scope.
func (r UserRepository) List(scope query.Scope, spec query.Spec) ([]models.User, int, error) {
	dbc := r.db()

	pred := query.BuildPredicate(UserFields, scope, spec)

	var total int
	if err := dbc.QueryRow(`SELECT COUNT(*) FROM users`+pred.Clause(), pred.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pg := query.Paginate(spec.Page, spec.PageSize, total)

	stmt := userSelect + pred.Clause()
	if ord, ok := query.ResolveSort(UserFields, spec.Sort, spec.SortOrder); ok {
		stmt += ord.Clause()
	} else {
		stmt += " ORDER BY id DESC"
	}
	stmt += " LIMIT ? OFFSET ?"

	args := append(append([]any{}, pred.Args...), pg.Limit, pg.Offset)
	rows, err := dbc.Query(stmt, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, err
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetByID loads one user inside scope. Soft-deleted rows read as absent.
func (r UserRepository) GetByID(scope query.Scope, id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, sql.ErrNoRows
	}
	var u models.User
	row := r.db().QueryRow(userSelect+` WHERE id=? AND site_id=? AND status<>? LIMIT 1`,
		id, scope.SiteID, scope.Deleted)
	if err := scanUser(row, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByLogin matches email or username inside one site, hash included, for
// credential checks.
func (r UserRepository) GetByLogin(scope query.Scope, login string) (models.User, error) {
	var u models.User
	row := r.db().QueryRow(userSelect+` WHERE site_id=? AND (email=? OR username=?) AND status<>? LIMIT 1`,
		scope.SiteID, login, login, scope.Deleted)
	if err := scanUser(row, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// CountLogin reports how many users already own the email or username
// inside the site.
func (r UserRepository) CountLogin(scope query.Scope, email, username string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE site_id=? AND (email=? OR username=?)`,
		scope.SiteID, email, username).Scan(&n)
	return n, err
}

// Insert stores a new user (hash already computed) and returns its id.
func (r UserRepository) Insert(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (site_id, name, username, email, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, u.SiteID, u.Name, u.Username, u.Email, u.PasswordHash, u.Role, u.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies the non-nil fields of upd. passwordHash, when non-empty,
// replaces the stored hash.
func (r UserRepository) Update(scope query.Scope, id int64, upd models.UserUpdate, passwordHash string) (models.User, error) {
	existing, err := r.GetByID(scope, id)
	if err != nil {
		return models.User{}, err
	}

	sets := []string{}
	args := []any{}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.Email != nil && strings.TrimSpace(*upd.Email) != "" {
		sets = append(sets, "email=?")
		args = append(args, strings.TrimSpace(*upd.Email))
	}
	if passwordHash != "" {
		sets = append(sets, "password_hash=?")
		args = append(args, passwordHash)
	}
	if upd.Role != nil && strings.TrimSpace(*upd.Role) != "" {
		sets = append(sets, "role=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*upd.Role)))
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
	if _, err := r.db().Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id=? AND site_id=?`, args...); err != nil {
		return models.User{}, err
	}
	return r.GetByID(scope, id)
}

// SoftDelete marks the user deleted.
func (r UserRepository) SoftDelete(scope query.Scope, id int64) error {
	res, err := r.db().Exec(`UPDATE users SET status=?, updated_at=NOW() WHERE id=? AND site_id=? AND status<>?`,
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
