package models

import (
	"time"

	"gorm.io/gorm"
)

// GlobalRole is the system-wide role of a user account, independent of any
// per-project collaborator role.
type GlobalRole string

const (
	GlobalRoleNormal    GlobalRole = "normal"
	GlobalRoleModerator GlobalRole = "moderator"
	GlobalRoleAdmin     GlobalRole = "admin"
)

// Rank orders global roles so that "strictly greater" comparisons work the
// same way as for project roles. Unknown roles rank lowest.
func (r GlobalRole) Rank() int {
	switch r {
	case GlobalRoleAdmin:
		return 2
	case GlobalRoleModerator:
		return 1
	case GlobalRoleNormal:
		return 0
	default:
		return -1
	}
}

// Valid reports whether r is one of the known global roles.
func (r GlobalRole) Valid() bool {
	return r == GlobalRoleNormal || r == GlobalRoleModerator || r == GlobalRoleAdmin
}

// The email index includes deleted_at so a soft-deleted account releases
// its address: deleted rows carry a timestamp, active rows a NULL, and the
// NULL never collides with a tombstone.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email_active" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         GlobalRole     `gorm:"type:varchar(20);not null;default:'normal'" json:"role"`
	Nickname     string         `gorm:"type:varchar(50)" json:"nickname"`
	Version      uint64         `gorm:"not null;default:1" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"uniqueIndex:idx_users_email_active" json:"-"`

	// Relations
	Collaborations []Collaborator `gorm:"foreignKey:UserID" json:"-"`
	Notifications  []Notification `gorm:"foreignKey:UserID" json:"-"`
}
