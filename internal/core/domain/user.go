package domain

import "time"

const (
	RoleSuperUser      = "super_user"
	RoleAdmin          = "admin"
	RoleLeadConsultant = "lead_consultant"
	RoleUser           = "user"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleSuperUser, RoleAdmin, RoleLeadConsultant, RoleUser:
		return true
	}
	return false
}

// IsAdmin reports whether the role may manage the admin console.
func IsAdmin(role string) bool {
	return role == RoleAdmin || role == RoleSuperUser
}

// User models an authenticated actor in the system.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string     `json:"email,omitempty" gorm:"size:255"`
	FullName     string     `json:"full_name,omitempty" gorm:"size:255"`
	Phone        string     `json:"phone,omitempty" gorm:"size:50"`
	Title        string     `json:"title,omitempty" gorm:"size:255"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         string     `json:"role" gorm:"size:50;not null;index"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ProfileUpdate carries the optional attributes a user may change on their own profile.
type ProfileUpdate struct {
	FullName *string
	Email    *string
	Phone    *string
	Title    *string
}

// Empty reports whether no attribute is set.
func (p ProfileUpdate) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.Phone == nil && p.Title == nil
}

// Session is the caller identity resolved from a bearer token.
type Session struct {
	UserID    uint
	Username  string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}
