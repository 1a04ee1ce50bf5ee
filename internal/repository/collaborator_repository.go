package repository

import (
	"errors"
	"fmt"

	"github.com/nonetrello/nonetrello-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateCollaborator is returned when a (project, user) pair already exists.
	ErrDuplicateCollaborator = errors.New("collaborator repository: collaborator already exists")
	// ErrStaleCollaborator is returned when a guarded write finds the target
	// role changed between the decision and the write.
	ErrStaleCollaborator = errors.New("collaborator repository: collaborator changed concurrently")
)

// GormCollaboratorRepository is a GORM implementation of CollaboratorRepository
type GormCollaboratorRepository struct {
	db *gorm.DB
}

// NewCollaboratorRepository creates a new CollaboratorRepository
func NewCollaboratorRepository(db *gorm.DB) CollaboratorRepository {
	return &GormCollaboratorRepository{db: db}
}

// Find returns the collaborator row, or gorm.ErrRecordNotFound
func (r *GormCollaboratorRepository) Find(projectID, userID uint64) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&collaborator).Error
	if err != nil {
		return nil, err
	}
	return &collaborator, nil
}

// RoleOrBlocked returns the stored role, treating an absent row as Blocked.
func (r *GormCollaboratorRepository) RoleOrBlocked(projectID, userID uint64) (models.Role, error) {
	collaborator, err := r.Find(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoleBlocked, nil
		}
		return models.RoleBlocked, err
	}
	return collaborator.Role, nil
}

// Add inserts a collaborator row. Existence is checked and the insert
// performed inside one transaction so a duplicate cannot slip in between.
func (r *GormCollaboratorRepository) Add(collaborator *models.Collaborator) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Collaborator
		err := tx.Where("project_id = ? AND user_id = ?", collaborator.ProjectID, collaborator.UserID).
			First(&existing).Error
		if err == nil {
			return ErrDuplicateCollaborator
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for existing collaborator: %w", err)
		}
		return tx.Create(collaborator).Error
	})
}

// readForDecision loads the actor role leniently and the target row strictly
// within the given transaction. A missing target is the caller's NotFound.
func readForDecision(tx *gorm.DB, projectID, actorID, targetID uint64) (models.Role, *models.Collaborator, error) {
	actorRole := models.RoleBlocked
	var actor models.Collaborator
	err := tx.Where("project_id = ? AND user_id = ?", projectID, actorID).First(&actor).Error
	if err == nil {
		actorRole = actor.Role
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleBlocked, nil, err
	}

	var target models.Collaborator
	if err := tx.Where("project_id = ? AND user_id = ?", projectID, targetID).First(&target).Error; err != nil {
		return models.RoleBlocked, nil, err
	}

	return actorRole, &target, nil
}

// ChangeRoleGuarded applies a role change. The roles the decision was based
// on are re-checked by the conditional update, so two concurrent changes
// against the same target cannot both commit against a stale role.
func (r *GormCollaboratorRepository) ChangeRoleGuarded(projectID, actorID, targetID uint64, newRole models.Role, check func(actorRole, targetRole models.Role) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		actorRole, target, err := readForDecision(tx, projectID, actorID, targetID)
		if err != nil {
			return err
		}

		if err := check(actorRole, target.Role); err != nil {
			return err
		}

		result := tx.Model(&models.Collaborator{}).
			Where("project_id = ? AND user_id = ? AND role = ?", projectID, targetID, target.Role).
			Update("role", newRole)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleCollaborator
		}
		return nil
	})
}

// RemoveGuarded removes the target collaborator under the same guard
// discipline as ChangeRoleGuarded.
func (r *GormCollaboratorRepository) RemoveGuarded(projectID, actorID, targetID uint64, check func(actorRole, targetRole models.Role) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		actorRole, target, err := readForDecision(tx, projectID, actorID, targetID)
		if err != nil {
			return err
		}

		if err := check(actorRole, target.Role); err != nil {
			return err
		}

		result := tx.
			Where("project_id = ? AND user_id = ? AND role = ?", projectID, targetID, target.Role).
			Delete(&models.Collaborator{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleCollaborator
		}
		return nil
	})
}

// List lists collaborators of a project with users preloaded
func (r *GormCollaboratorRepository) List(projectID uint64) ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	if err := r.db.
		Preload("User").
		Where("project_id = ?", projectID).
		Find(&collaborators).Error; err != nil {
		return nil, err
	}
	return collaborators, nil
}
