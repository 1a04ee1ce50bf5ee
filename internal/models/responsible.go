package models

import "time"

// Responsible is a user appointed to a card. Appointments keep who made
// them and when.
type Responsible struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	CardID      uint64    `gorm:"not null;index" json:"card_id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	AppointedBy uint64    `gorm:"not null" json:"appointed_by"`
	AppointedAt time.Time `json:"appointed_at"`

	// Relations
	Card Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
