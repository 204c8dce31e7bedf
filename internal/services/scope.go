package services

import (
	"errors"
	"strings"

	"cms/internal/domain"
	"cms/internal/query"

	"github.com/go-sql-driver/mysql"
)

func scopeOf(siteID domain.ID) query.Scope {
	return query.Scope{SiteID: int64(siteID), Deleted: string(domain.StatusDeleted)}
}

// editorialStatuses are the states an article moves through before deletion.
var editorialStatuses = map[string]bool{
	string(domain.StatusDraft):     true,
	string(domain.StatusPending):   true,
	string(domain.StatusPublished): true,
	string(domain.StatusArchived):  true,
}

// simpleStatuses cover the on/off entities.
var simpleStatuses = map[string]bool{
	string(domain.StatusActive):   true,
	string(domain.StatusInactive): true,
}

func normalizeStatus(raw string, def domain.Status) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return string(def)
	}
	return s
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
