package models

import "time"

// DefaultBoardTitles are the boards created together with every project.
var DefaultBoardTitles = []string{"Idea", "Elaboration", "Implementation", "Done"}

type Board struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(16);not null" json:"title"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Cards   []Card  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}
