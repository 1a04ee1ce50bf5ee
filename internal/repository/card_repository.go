package repository

import (
	"github.com/nonetrello/nonetrello-api/internal/models"
	"gorm.io/gorm"
)

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

func (r *GormCardRepository) Create(card *models.Card) error {
	return r.db.Create(card).Error
}

// FindByID finds a card with its board preloaded, so the owning project is
// resolvable without a second query.
func (r *GormCardRepository) FindByID(id uint64) (*models.Card, error) {
	var card models.Card
	if err := r.db.Preload("Board").First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *GormCardRepository) Update(card *models.Card) error {
	return r.db.Save(card).Error
}

// Delete removes a card together with its appointments and tags.
func (r *GormCardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&models.Responsible{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.CardTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Card{}, id).Error
	})
}

func (r *GormCardRepository) ListByBoard(boardID uint64) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.Where("board_id = ?", boardID).Order("priority DESC, id").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// AddResponsible appoints a user to a card. Appointments are not unique;
// repeat appointments are kept as separate rows.
func (r *GormCardRepository) AddResponsible(responsible *models.Responsible) error {
	return r.db.Create(responsible).Error
}

// RemoveResponsible removes all appointments of the user on the card
func (r *GormCardRepository) RemoveResponsible(cardID, userID uint64) error {
	result := r.db.Where("card_id = ? AND user_id = ?", cardID, userID).Delete(&models.Responsible{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListResponsibles lists appointments with users preloaded
func (r *GormCardRepository) ListResponsibles(cardID uint64) ([]models.Responsible, error) {
	var responsibles []models.Responsible
	if err := r.db.
		Preload("User").
		Where("card_id = ?", cardID).
		Find(&responsibles).Error; err != nil {
		return nil, err
	}
	return responsibles, nil
}
