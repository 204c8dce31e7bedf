package models

// User is an account bound to one site. PasswordHash never serializes.
type User struct {
	ID           int64  `json:"id"`
	SiteID       int64  `json:"siteId"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// UserUpdate supports PATCH-style updates via key presence. Password, when
// present, arrives plain and is hashed by the service.
type UserUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}
