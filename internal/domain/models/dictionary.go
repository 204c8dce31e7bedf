package models

// Dictionary is one key/value entry inside a named group (label status,
// badge warna, dsb) per site.
type Dictionary struct {
	ID        int64  `json:"id"`
	SiteID    int64  `json:"siteId"`
	GroupKey  string `json:"groupKey"`
	ItemKey   string `json:"itemKey"`
	ItemValue string `json:"itemValue"`
	Position  int    `json:"position"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// DictionaryUpdate supports PATCH-style updates via key presence.
type DictionaryUpdate struct {
	ItemValue *string `json:"itemValue"`
	Position  *int    `json:"position"`
	Status    *string `json:"status"`
}
