package repository

import (
	"github.com/nonetrello/nonetrello-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// AddProjectTag inserts the tag if absent. Re-inserting the same tag is a
// no-op, resolved by the database rather than a read-then-write.
func (r *GormTagRepository) AddProjectTag(projectID uint64, tag string) error {
	row := models.ProjectTag{ProjectID: projectID, Tag: tag}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r *GormTagRepository) ListProjectTags(projectID uint64) ([]models.ProjectTag, error) {
	var tags []models.ProjectTag
	if err := r.db.Where("project_id = ?", projectID).Order("tag").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormTagRepository) RenameProjectTag(projectID uint64, oldTag, newTag string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("project_id = ? AND tag = ?", projectID, oldTag).Delete(&models.ProjectTag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		row := models.ProjectTag{ProjectID: projectID, Tag: newTag}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	})
}

func (r *GormTagRepository) DeleteProjectTag(projectID uint64, tag string) error {
	result := r.db.Where("project_id = ? AND tag = ?", projectID, tag).Delete(&models.ProjectTag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddCardTag inserts the tag if absent, same no-op discipline as project tags.
func (r *GormTagRepository) AddCardTag(cardID uint64, tag string) error {
	row := models.CardTag{CardID: cardID, Tag: tag}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r *GormTagRepository) ListCardTags(cardID uint64) ([]models.CardTag, error) {
	var tags []models.CardTag
	if err := r.db.Where("card_id = ?", cardID).Order("tag").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormTagRepository) RenameCardTag(cardID uint64, oldTag, newTag string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("card_id = ? AND tag = ?", cardID, oldTag).Delete(&models.CardTag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		row := models.CardTag{CardID: cardID, Tag: newTag}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	})
}

func (r *GormTagRepository) DeleteCardTag(cardID uint64, tag string) error {
	result := r.db.Where("card_id = ? AND tag = ?", cardID, tag).Delete(&models.CardTag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
