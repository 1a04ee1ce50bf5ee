package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(16);not null" json:"title"`
	Description string    `gorm:"type:varchar(1024)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Collaborators []Collaborator `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"collaborators,omitempty"`
	Boards        []Board        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"boards,omitempty"`
}
