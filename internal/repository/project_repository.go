package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/nonetrello/nonetrello-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateProject is returned when creating the project row fails inside the creation transaction.
	ErrCreateProject = errors.New("project repository: create project failed")
	// ErrCreateOwner is returned when creating the owner collaborator fails inside the creation transaction.
	ErrCreateOwner = errors.New("project repository: create owner collaborator failed")
	// ErrCreateDefaultBoards is returned when creating the default boards fails inside the creation transaction.
	ErrCreateDefaultBoards = errors.New("project repository: create default boards failed")
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwnerAndBoards creates the project, the creator's Owner
// collaborator row, and the default boards atomically. Either all rows are
// visible afterwards or none.
func (r *GormProjectRepository) CreateWithOwnerAndBoards(project *models.Project, ownerID uint64, boardTitles []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		owner := &models.Collaborator{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      models.RoleOwner,
			AddedAt:   time.Now(),
		}
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOwner, err)
		}

		for _, title := range boardTitles {
			board := &models.Board{
				Title:     title,
				ProjectID: project.ID,
			}
			if err := tx.Create(board).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateDefaultBoards, err)
			}
		}

		return nil
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByTitle finds a project by exact title
func (r *GormProjectRepository) FindByTitle(title string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("title = ?", title).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update persists changes to a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project together with its collaborators, tags, boards,
// cards, and the cards' appointments and tags.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var boardIDs []uint64
		if err := tx.Model(&models.Board{}).Where("project_id = ?", id).Pluck("id", &boardIDs).Error; err != nil {
			return err
		}
		if len(boardIDs) > 0 {
			var cardIDs []uint64
			if err := tx.Model(&models.Card{}).Where("board_id IN ?", boardIDs).Pluck("id", &cardIDs).Error; err != nil {
				return err
			}
			if len(cardIDs) > 0 {
				if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.Responsible{}).Error; err != nil {
					return err
				}
				if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.CardTag{}).Error; err != nil {
					return err
				}
				if err := tx.Where("board_id IN ?", boardIDs).Delete(&models.Card{}).Error; err != nil {
					return err
				}
			}
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Board{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Collaborator{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// ListForUser lists memberships with their projects preloaded
func (r *GormProjectRepository) ListForUser(userID uint64) ([]models.Collaborator, error) {
	var memberships []models.Collaborator
	if err := r.db.
		Preload("Project").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
