package models

// AuditEvent is one append-only trail row. audit_logs has no status column;
// events are never soft-deleted.
type AuditEvent struct {
	ID        string `json:"id"`
	SiteID    int64  `json:"siteId"`
	ActorID   int64  `json:"actorId"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityID  int64  `json:"entityId"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
