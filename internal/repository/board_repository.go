package repository

import (
	"github.com/nonetrello/nonetrello-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete removes a board together with its cards and their appointments
// and tags.
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cardIDs []uint64
		if err := tx.Model(&models.Card{}).Where("board_id = ?", id).Pluck("id", &cardIDs).Error; err != nil {
			return err
		}
		if len(cardIDs) > 0 {
			if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.Responsible{}).Error; err != nil {
				return err
			}
			if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.CardTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("board_id = ?", id).Delete(&models.Card{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Board{}, id).Error
	})
}

func (r *GormBoardRepository) ListByProject(projectID uint64) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.Where("project_id = ?", projectID).Order("id").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}
