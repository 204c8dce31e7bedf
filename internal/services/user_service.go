package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
	"cms/internal/repositories"
	"cms/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserService mengelola akun per site. Password selalu disimpan sebagai
// hash bcrypt.
type UserService struct {
	Repo      repositories.UserRepository
	Audit     AuditService
	RequestID string
}

// UserInput carries the create payload after binding.
type UserInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s UserService) List(rc domain.RequestContext, spec query.Spec) (query.Result[models.User], error) {
	rows, total, err := s.Repo.List(scopeOf(rc.SiteID), spec)
	if err != nil {
		return query.Result[models.User]{}, domain.InternalError{Msg: "gagal mengambil user", Err: err}
	}
	return query.Assemble(rows, spec.Page, spec.PageSize, total), nil
}

func (s UserService) Get(rc domain.RequestContext, id int64) (models.User, error) {
	u, err := s.Repo.GetByID(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal mengambil user", Err: err}
	}
	return u, nil
}

// Login verifies site-scoped credentials. Unknown identity and wrong
// password come back as the same NotFoundError so callers cannot probe
// which accounts exist.
func (s UserService) Login(rc domain.RequestContext, login, password string) (models.User, error) {
	login = strings.ToLower(utils.TrimOrEmpty(login))
	if login == "" || password == "" {
		return models.User{}, domain.ValidationError{Msg: "email dan password wajib diisi"}
	}

	u, err := s.Repo.GetByLogin(scopeOf(rc.SiteID), login)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal query user", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if !strings.EqualFold(u.Status, string(domain.StatusActive)) {
		return models.User{}, domain.ValidationError{Field: "status", Msg: "akun tidak aktif"}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d site_id=%d", u.ID, rc.SiteID))
	return u, nil
}

func (s UserService) Create(rc domain.RequestContext, in UserInput) (models.User, error) {
	username := strings.ToLower(utils.TrimOrEmpty(in.Username))
	if username == "" {
		return models.User{}, domain.ValidationError{Field: "username", Msg: "wajib diisi"}
	}
	if len(in.Password) < 8 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "minimal 8 karakter"}
	}
	role := strings.ToLower(utils.TrimOrEmpty(in.Role))
	if role == "" {
		role = domain.RoleViewer
	}
	if domain.RoleLevel(role) == 0 {
		return models.User{}, domain.ValidationError{Field: "role", Msg: "role tidak dikenal"}
	}
	email := strings.ToLower(utils.TrimOrEmpty(in.Email))

	n, err := s.Repo.CountLogin(scopeOf(rc.SiteID), email, username)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal cek user", Err: err}
	}
	if n > 0 {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email atau username sudah terdaftar"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
	}

	u := models.User{
		SiteID:       int64(rc.SiteID),
		Name:         utils.TrimOrEmpty(in.Name),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       string(domain.StatusActive),
	}

	id, err := s.Repo.Insert(u)
	if err != nil {
		if isDuplicate(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email atau username sudah terdaftar", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "gagal menyimpan user", Err: err}
	}

	utils.LogEvent(s.RequestID, "users", "create", fmt.Sprintf("id=%d site_id=%d role=%s", id, rc.SiteID, role))
	s.Audit.Record(rc, "user.create", "users", id, username)
	return s.Get(rc, id)
}

func (s UserService) Update(rc domain.RequestContext, id int64, upd models.UserUpdate) (models.User, error) {
	if upd.Role != nil && utils.TrimOrEmpty(*upd.Role) != "" {
		if domain.RoleLevel(*upd.Role) == 0 {
			return models.User{}, domain.ValidationError{Field: "role", Msg: "role tidak dikenal"}
		}
	}
	if upd.Status != nil && utils.TrimOrEmpty(*upd.Status) != "" {
		if !simpleStatuses[normalizeStatus(*upd.Status, domain.StatusActive)] {
			return models.User{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
		}
	}

	passwordHash := ""
	if upd.Password != nil && *upd.Password != "" {
		if len(*upd.Password) < 8 {
			return models.User{}, domain.ValidationError{Field: "password", Msg: "minimal 8 karakter"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
		}
		passwordHash = string(hash)
	}

	u, err := s.Repo.Update(scopeOf(rc.SiteID), id, upd, passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		if isDuplicate(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email sudah terdaftar", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "gagal update user", Err: err}
	}

	utils.LogEvent(s.RequestID, "users", "update", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "user.update", "users", id, "")
	return u, nil
}

func (s UserService) Delete(rc domain.RequestContext, id int64) error {
	if int64(rc.UserID) == id {
		return domain.ValidationError{Field: "id", Msg: "tidak bisa menghapus akun sendiri"}
	}

	err := s.Repo.SoftDelete(scopeOf(rc.SiteID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return domain.InternalError{Msg: "gagal hapus user", Err: err}
	}

	utils.LogEvent(s.RequestID, "users", "delete", fmt.Sprintf("id=%d site_id=%d", id, rc.SiteID))
	s.Audit.Record(rc, "user.delete", "users", id, "")
	return nil
}
