package models

// Promotion is a site banner/campaign with an active window. StartsAt and
// EndsAt use "YYYY-MM-DD HH:MM:SS".
type Promotion struct {
	ID        int64  `json:"id"`
	SiteID    int64  `json:"siteId"`
	Title     string `json:"title"`
	Banner    string `json:"banner,omitempty"`
	LinkURL   string `json:"linkUrl,omitempty"`
	Priority  int    `json:"priority"`
	Status    string `json:"status"`
	StartsAt  string `json:"startsAt,omitempty"`
	EndsAt    string `json:"endsAt,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// PromotionUpdate supports PATCH-style updates via key presence.
type PromotionUpdate struct {
	Title    *string `json:"title"`
	Banner   *string `json:"banner"`
	LinkURL  *string `json:"linkUrl"`
	Priority *int    `json:"priority"`
	Status   *string `json:"status"`
	StartsAt *string `json:"startsAt"`
	EndsAt   *string `json:"endsAt"`
}
