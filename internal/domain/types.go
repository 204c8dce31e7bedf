package domain

import "strings"

// ID is used across domain entities.
type ID int64

// Status is a row lifecycle value. Soft delete keeps the row and sets
// StatusDeleted; list queries exclude it unconditionally.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusDeleted   Status = "DELETED"
)

// Roles form a total order: viewer < editor < admin < owner.
const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

var roleLevels = map[string]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

// RoleLevel returns the rank of a role, 0 for unknown roles.
func RoleLevel(role string) int {
	return roleLevels[strings.ToLower(strings.TrimSpace(role))]
}

// RoleAtLeast reports whether role ranks at or above min. Unknown roles
// rank below every known role and never pass.
func RoleAtLeast(role, min string) bool {
	r := RoleLevel(role)
	return r > 0 && r >= RoleLevel(min)
}

// RequestContext carries the authenticated caller and its site scope.
type RequestContext struct {
	UserID ID     `json:"userId"`
	SiteID ID     `json:"siteId"`
	Role   string `json:"role"`
}
