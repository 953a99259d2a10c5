package entity

import (
	"time"
)

// User is the aggregate root for the member domain.
// Password holds a hex SHA-256 digest and Secret is the opaque bearer
// credential presented on authenticated requests. Neither field may
// leave the service on unprivileged reads.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Password    string       `json:"-"`
	Secret      string       `json:"-"`
	Name        string       `json:"name"`
	Image       string       `json:"image"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// HasPermission reports whether the user holds the single permission.
func (u *User) HasPermission(p Permission) bool {
	return HasPermissions(u.Permissions, []Permission{p})
}
