package models

import "time"

type Notification struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"type:varchar(512);not null" json:"text"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	Checked   bool      `gorm:"not null;default:false" json:"checked"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
