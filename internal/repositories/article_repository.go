package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	"cms/internal/config"
	"cms/internal/domain"
	"cms/internal/domain/models"
	"cms/internal/query"
)

// ArticleFields maps API field names onto articles columns for the list
// endpoints. Fields left out are invisible to filtering, search and sort.
var ArticleFields = &query.Registry{
	Entity: "articles",
	Tenant: "site_id",
	Status: "status",
	Fields: map[string]query.Column{
		"id":          {Name: "id", Kind: query.KindInt},
		"channelId":   {Name: "channel_id", Kind: query.KindInt},
		"authorId":    {Name: "author_id", Kind: query.KindInt},
		"title":       {Name: "title", Kind: query.KindText},
		"slug":        {Name: "slug", Kind: query.KindText},
		"summary":     {Name: "summary", Kind: query.KindText},
		"body":        {Name: "body", Kind: query.KindText},
		"status":      {Name: "status", Kind: query.KindText},
		"views":       {Name: "views", Kind: query.KindInt},
		"publishedAt": {Name: "published_at", Kind: query.KindTime},
		"createdAt":   {Name: "created_at", Kind: query.KindTime},
		"updatedAt":   {Name: "updated_at", Kind: query.KindTime},
	},
}

// ArticleRepository wraps DB access for articles.
type ArticleRepository struct {
	DB *sql.DB
}

func (r ArticleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const articleSelect = `
	SELECT
		id,
		site_id,
		COALESCE(channel_id,0),
		COALESCE(author_id,0),
		title,
		COALESCE(slug,''),
		COALESCE(summary,''),
		COALESCE(body,''),
		status,
		COALESCE(views,0),
		COALESCE(DATE_FORMAT(published_at,'%Y-%m-%d %H:%i:%s'),''),
		COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
		COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')
	FROM articles`

func scanArticle(rows interface{ Scan(...any) error }, a *models.Article) error {
	return rows.Scan(
		&a.ID,
		&a.SiteID,
		&a.ChannelID,
		&a.AuthorID,
		&a.Title,
		&a.Slug,
		&a.Summary,
		&a.Body,
		&a.Status,
		&a.Views,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

// List returns one page of articles matching spec inside scope, plus the
// total match count before windowing.
func (r ArticleRepository) List(scope query.Scope, spec query.Spec) ([]models.Article, int, error) {
	dbc := r.db()

	pred := query.BuildPredicate(ArticleFields, scope, spec)

	var total int
	if err := dbc.QueryRow(`SELECT COUNT(*) FROM articles`+pred.Clause(), pred.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pg := query.Paginate(spec.Page, spec.PageSize, total)

	stmt := articleSelect + pred.Clause()
	if ord, ok := query.ResolveSort(ArticleFields, spec.Sort, spec.SortOrder); ok {
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

	list := []models.Article{}
	for rows.Next() {
		var a models.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, 0, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetByID loads one article inside scope. Soft-deleted rows read as absent.
func (r ArticleRepository) GetByID(scope query.Scope, id int64) (models.Article, error) {
	if id <= 0 {
		return models.Article{}, sql.ErrNoRows
	}
	var a models.Article
	row := r.db().QueryRow(articleSelect+` WHERE id=? AND site_id=? AND status<>? LIMIT 1`,
		id, scope.SiteID, scope.Deleted)
	if err := scanArticle(row, &a); err != nil {
		return models.Article{}, err
	}
	return a, nil
}

// Insert stores a new article and returns its id.
func (r ArticleRepository) Insert(a models.Article) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO articles (site_id, channel_id, author_id, title, slug, summary, body, status, views, published_at, created_at, updated_at)
		VALUES (?, NULLIF(?,0), NULLIF(?,0), ?, ?, ?, ?, ?, 0, NULLIF(?,''), NOW(), NOW())
	`, a.SiteID, a.ChannelID, a.AuthorID, a.Title, a.Slug, a.Summary, a.Body, a.Status, a.PublishedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePartial applies only fields present in raw JSON (key presence),
// keeping existing data intact. Moving into PUBLISHED stamps published_at
// once.
func (r ArticleRepository) UpdatePartial(scope query.Scope, id int64, rawJSON []byte) (models.Article, error) {
	existing, err := r.GetByID(scope, id)
	if err != nil {
		return models.Article{}, err
	}

	merged, presence, err := buildArticlePatch(existing, rawJSON)
	if err != nil {
		return merged, err
	}

	sets := []string{}
	args := []any{}
	add := func(cond bool, column string, val any) {
		if cond {
			sets = append(sets, column+"=?")
			args = append(args, val)
		}
	}

	if presence.ChannelID {
		sets = append(sets, "channel_id=NULLIF(?,0)")
		args = append(args, merged.ChannelID)
	}
	add(presence.Title, "title", merged.Title)
	add(presence.Summary, "summary", merged.Summary)
	add(presence.Body, "body", merged.Body)
	add(presence.Status, "status", merged.Status)

	if presence.Status && merged.Status == string(domain.StatusPublished) && existing.PublishedAt == "" {
		sets = append(sets, "published_at=NOW()")
	}

	if len(sets) == 0 {
		return merged, nil
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id, scope.SiteID)
	if _, err := r.db().Exec(`UPDATE articles SET `+strings.Join(sets, ", ")+` WHERE id=? AND site_id=?`, args...); err != nil {
		return merged, err
	}
	return r.GetByID(scope, id)
}

// SoftDelete marks the row deleted; it stays in the table for the trail.
func (r ArticleRepository) SoftDelete(scope query.Scope, id int64) error {
	res, err := r.db().Exec(`UPDATE articles SET status=?, updated_at=NOW() WHERE id=? AND site_id=? AND status<>?`,
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

// IncrementViews bumps the read counter. Callers treat failures as
// non-fatal.
func (r ArticleRepository) IncrementViews(scope query.Scope, id int64) error {
	_, err := r.db().Exec(`UPDATE articles SET views=views+1 WHERE id=? AND site_id=?`, id, scope.SiteID)
	return err
}

type articleFieldPresence struct {
	ChannelID bool
	Title     bool
	Summary   bool
	Body      bool
	Status    bool
}

// buildArticlePatch merges payload into the existing row respecting key
// presence. Present-but-empty strings keep the stored value.
func buildArticlePatch(existing models.Article, rawJSON []byte) (models.Article, articleFieldPresence, error) {
	payloadKeys := map[string]bool{}
	var payloadMap map[string]any
	if err := json.Unmarshal(rawJSON, &payloadMap); err == nil {
		for k := range payloadMap {
			payloadKeys[strings.ToLower(k)] = true
		}
	}
	hasField := func(names ...string) bool {
		for _, n := range names {
			if payloadKeys[strings.ToLower(n)] {
				return true
			}
		}
		return false
	}

	var input models.Article
	if err := json.Unmarshal(rawJSON, &input); err != nil {
		return existing, articleFieldPresence{}, err
	}

	presence := articleFieldPresence{
		ChannelID: hasField("channelid", "channel_id"),
		Title:     hasField("title"),
		Summary:   hasField("summary"),
		Body:      hasField("body"),
		Status:    hasField("status"),
	}

	// channel_id bisa datang sebagai snake_case, isi manual jika belum terisi.
	if presence.ChannelID && input.ChannelID == 0 {
		if v, ok := payloadMap["channel_id"]; ok {
			if f, ok := v.(float64); ok {
				input.ChannelID = int64(f)
			}
		}
	}

	merged := existing

	if presence.ChannelID && input.ChannelID > 0 {
		merged.ChannelID = input.ChannelID
	} else if presence.ChannelID {
		// zero would null the column, treat as not updating
		presence.ChannelID = false
	}
	if presence.Title && strings.TrimSpace(input.Title) != "" {
		merged.Title = input.Title
	}
	if presence.Summary && strings.TrimSpace(input.Summary) != "" {
		merged.Summary = input.Summary
	}
	if presence.Body && strings.TrimSpace(input.Body) != "" {
		merged.Body = input.Body
	}
	if presence.Status && strings.TrimSpace(input.Status) != "" {
		merged.Status = strings.ToUpper(strings.TrimSpace(input.Status))
	} else if presence.Status {
		presence.Status = false
	}

	return merged, presence, nil
}
