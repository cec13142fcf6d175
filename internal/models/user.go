package models

// UserRole is the authorization role of a user.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// User represents the user model in the database
type User struct {
	Base
	Username         string   `gorm:"uniqueIndex;not null" json:"username"`
	Password         string   `gorm:"not null" json:"-"`
	Name             string   `json:"name"`
	Role             UserRole `gorm:"not null;default:'user'" json:"role"`
	Avatar           string   `json:"avatar,omitempty"`
	RefreshTokenHash string   `gorm:"size:64" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
