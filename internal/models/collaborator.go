package models

import "time"

// Role is the per-project collaborator role. The scale is ordered: a higher
// value may act on a strictly lower one, never the other way around.
type Role int

const (
	RoleBlocked Role = 0
	RoleMember  Role = 1
	RoleAdmin   Role = 2
	RoleOwner   Role = 3
)

// Valid reports whether r is on the defined role scale. The -1 value some
// clients send is rejected here rather than silently accepted.
func (r Role) Valid() bool {
	return r >= RoleBlocked && r <= RoleOwner
}

func (r Role) String() string {
	switch r {
	case RoleBlocked:
		return "blocked"
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// Collaborator is a (project, user) membership record carrying a role.
// Role changes go through the collaborator service only, never through a
// plain update.
type Collaborator struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	Role      Role      `gorm:"not null;default:1" json:"role"`
	AddedAt   time.Time `json:"added_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
