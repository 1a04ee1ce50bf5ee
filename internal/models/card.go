package models

import "time"

type CardStatus string

const (
	CardStatusTodo       CardStatus = "todo"
	CardStatusInProgress CardStatus = "in_progress"
	CardStatusDone       CardStatus = "done"
)

type Card struct {
	ID               uint64     `gorm:"primarykey" json:"id"`
	BoardID          uint64     `gorm:"not null;index" json:"board_id"`
	Title            string     `gorm:"type:varchar(16);not null" json:"title"`
	About            string     `gorm:"type:varchar(2048)" json:"about"`
	BriefAbout       string     `gorm:"type:varchar(255)" json:"brief_about"`
	SellBy           *time.Time `json:"sell_by"`
	Status           CardStatus `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority         int        `gorm:"not null;default:0" json:"priority"`
	ExternalResource string     `gorm:"type:varchar(255)" json:"external_resource"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Relations
	Board        Board         `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Responsibles []Responsible `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"responsibles,omitempty"`
}
