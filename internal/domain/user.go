package domain

import "time"

// Role enumerates the access levels a user account can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account of the system.
// PasswordHash never leaves the service layer; outbound views are sanitized.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Age          int
	Role         Role
	IsVerified   bool
	Bio          string
	Avatar       string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
