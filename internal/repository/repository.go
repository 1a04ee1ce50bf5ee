package repository

import (
	"github.com/nonetrello/nonetrello-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds an active user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds an active user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// SoftDelete flags the user as deleted without purging dependent rows
	SoftDelete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithOwnerAndBoards creates the project, its owner collaborator
	// row, and the default boards within a single transaction.
	CreateWithOwnerAndBoards(project *models.Project, ownerID uint64, boardTitles []string) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByTitle finds a project by exact title
	FindByTitle(title string) (*models.Project, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// Delete removes a project and, via FK cascade, its dependent rows
	Delete(id uint64) error

	// ListForUser lists memberships (with projects preloaded) for a user
	ListForUser(userID uint64) ([]models.Collaborator, error)
}

// CollaboratorRepository defines the interface for collaborator data access.
// Role mutation goes through the guarded operations only, so the
// read-then-decide-then-write sequence stays atomic.
type CollaboratorRepository interface {
	// Find returns the collaborator row, or gorm.ErrRecordNotFound
	Find(projectID, userID uint64) (*models.Collaborator, error)

	// RoleOrBlocked returns the stored role, or RoleBlocked when no row exists
	RoleOrBlocked(projectID, userID uint64) (models.Role, error)

	// Add inserts a collaborator row; a duplicate key is surfaced as
	// ErrDuplicateCollaborator and the existing row is left untouched
	Add(collaborator *models.Collaborator) error

	// ChangeRoleGuarded re-reads both roles inside a transaction, asks check
	// to decide, and applies the new role only if the target role is still
	// the one the decision was based on. A concurrent change surfaces as
	// ErrStaleCollaborator.
	ChangeRoleGuarded(projectID, actorID, targetID uint64, newRole models.Role, check func(actorRole, targetRole models.Role) error) error

	// RemoveGuarded removes the target under the same guard discipline
	RemoveGuarded(projectID, actorID, targetID uint64, check func(actorRole, targetRole models.Role) error) error

	// List lists collaborators of a project with users preloaded
	List(projectID uint64) ([]models.Collaborator, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(board *models.Board) error
	FindByID(id uint64) (*models.Board, error)
	Update(board *models.Board) error
	Delete(id uint64) error
	ListByProject(projectID uint64) ([]models.Board, error)
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(card *models.Card) error

	// FindByID finds a card with its board preloaded so callers can resolve
	// the owning project
	FindByID(id uint64) (*models.Card, error)

	Update(card *models.Card) error
	Delete(id uint64) error
	ListByBoard(boardID uint64) ([]models.Card, error)

	// AddResponsible appoints a user to a card
	AddResponsible(responsible *models.Responsible) error

	// RemoveResponsible removes all appointments of the user on the card
	RemoveResponsible(cardID, userID uint64) error

	// ListResponsibles lists appointments with users preloaded
	ListResponsibles(cardID uint64) ([]models.Responsible, error)
}

// TagRepository defines the interface for tag data access. Adds are
// idempotent: inserting an existing (entity, tag) pair is a no-op.
type TagRepository interface {
	AddProjectTag(projectID uint64, tag string) error
	ListProjectTags(projectID uint64) ([]models.ProjectTag, error)
	RenameProjectTag(projectID uint64, oldTag, newTag string) error
	DeleteProjectTag(projectID uint64, tag string) error

	AddCardTag(cardID uint64, tag string) error
	ListCardTags(cardID uint64) ([]models.CardTag, error)
	RenameCardTag(cardID uint64, oldTag, newTag string) error
	DeleteCardTag(cardID uint64, tag string) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByUser(userID uint64) ([]models.Notification, error)

	// MarkChecked flags a notification as seen; the recipient filter keeps
	// users from checking someone else's inbox
	MarkChecked(id, userID uint64) error
}
