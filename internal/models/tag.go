package models

// ProjectTag is a free-text label on a project. The composite key makes
// duplicate inserts collide, which the repository turns into a no-op.
type ProjectTag struct {
	ProjectID uint64 `gorm:"primarykey" json:"project_id"`
	Tag       string `gorm:"primarykey;type:varchar(64)" json:"tag"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// CardTag is a free-text label on a card.
type CardTag struct {
	CardID uint64 `gorm:"primarykey" json:"card_id"`
	Tag    string `gorm:"primarykey;type:varchar(64)" json:"tag"`

	Card Card `gorm:"foreignKey:CardID" json:"-"`
}
