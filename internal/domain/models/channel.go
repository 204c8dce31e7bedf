package models

// Channel is a navigation/category node. Channels nest one level deep via
// ParentID; 0 means root.
type Channel struct {
	ID        int64  `json:"id"`
	SiteID    int64  `json:"siteId"`
	ParentID  int64  `json:"parentId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Position  int    `json:"position"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ChannelNode is a Channel plus its children, as served by the tree endpoint.
type ChannelNode struct {
	Channel
	Children []ChannelNode `json:"children"`
}

// ChannelUpdate supports PATCH-style updates via key presence.
type ChannelUpdate struct {
	ParentID *int64  `json:"parentId"`
	Name     *string `json:"name"`
	Position *int    `json:"position"`
	Status   *string `json:"status"`
}
