package models

// Article is one editorial row, always scoped to a site. Timestamp fields
// carry pre-formatted "YYYY-MM-DD HH:MM:SS" strings straight from the query.
type Article struct {
	ID          int64  `json:"id"`
	SiteID      int64  `json:"siteId"`
	ChannelID   int64  `json:"channelId"`
	AuthorID    int64  `json:"authorId"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Summary     string `json:"summary"`
	Body        string `json:"body,omitempty"`
	Status      string `json:"status"`
	Views       int64  `json:"views"`
	PublishedAt string `json:"publishedAt,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
