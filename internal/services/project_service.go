package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nonetrello/nonetrello-api/internal/constants"
	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/repository"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidProjectTitle  = errors.New("title must be between 3 and 16 characters")
	ErrInvalidDescription   = errors.New("description must not exceed 1024 characters")
	ErrCollaboratorExists   = errors.New("user is already a collaborator on this project")
	ErrCollaboratorConflict = errors.New("collaborator was changed by a concurrent request")
)

// ProjectService provides business logic for projects and their
// collaborators. Every permission decision is delegated to the Authority.
type ProjectService struct {
	projectRepo      repository.ProjectRepository
	collabRepo       repository.CollaboratorRepository
	notificationRepo repository.NotificationRepository
	authority        *Authority
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, collabRepo repository.CollaboratorRepository, notificationRepo repository.NotificationRepository, authority *Authority) *ProjectService {
	return &ProjectService{
		projectRepo:      projectRepo,
		collabRepo:       collabRepo,
		notificationRepo: notificationRepo,
		authority:        authority,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	CreatorID   uint64
}

func validateProjectFields(title, description string) error {
	if len(title) < constants.MinProjectTitleLength || len(title) > constants.MaxProjectTitleLength {
		return ErrInvalidProjectTitle
	}
	if len(description) > constants.MaxDescriptionLength {
		return ErrInvalidDescription
	}
	return nil
}

// CreateProject creates the project, its Owner collaborator, and the four
// default boards in one transaction.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateProjectFields(title, input.Description); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       title,
		Description: input.Description,
	}

	if err := s.projectRepo.CreateWithOwnerAndBoards(project, input.CreatorID, models.DefaultBoardTitles); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjectsForUser returns the memberships of a user with projects
// preloaded.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]models.Collaborator, error) {
	memberships, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return memberships, nil
}

// GetProject fetches a project by ID. Guests may read projects; mutation is
// what the authority gates.
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// GetProjectByTitle fetches a project by exact title.
func (s *ProjectService) GetProjectByTitle(title string) (*models.Project, error) {
	project, err := s.projectRepo.FindByTitle(title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// UpdateProjectInput holds the optional fields of a project edit.
type UpdateProjectInput struct {
	Title       *string
	Description *string
}

// UpdateProject applies a partial edit, gated on Admin.
func (s *ProjectService) UpdateProject(actorID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	if err := s.authority.CanEditProject(actorID, projectID); err != nil {
		return nil, err
	}

	project, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if len(title) < constants.MinProjectTitleLength || len(title) > constants.MaxProjectTitleLength {
			return nil, ErrInvalidProjectTitle
		}
		project.Title = title
	}
	if input.Description != nil {
		if len(*input.Description) > constants.MaxDescriptionLength {
			return nil, ErrInvalidDescription
		}
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project. Only the Owner may do this.
func (s *ProjectService) DeleteProject(actorID, projectID uint64) error {
	if _, err := s.GetProject(projectID); err != nil {
		return err
	}

	role, err := s.authority.RoleOrBlocked(projectID, actorID)
	if err != nil {
		return err
	}
	if role < models.RoleOwner {
		return ErrCannotActOnPeer
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ListCollaborators lists the project's collaborators; membership required.
func (s *ProjectService) ListCollaborators(actorID, projectID uint64) ([]models.Collaborator, error) {
	if _, err := s.GetProject(projectID); err != nil {
		return nil, err
	}
	if err := s.authority.RequireMember(projectID, actorID); err != nil {
		return nil, err
	}
	collaborators, err := s.collabRepo.List(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	return collaborators, nil
}

// InviteCollaboratorInput represents an invite.
type InviteCollaboratorInput struct {
	ActorID   uint64
	ProjectID uint64
	UserID    uint64
	Role      models.Role
}

// InviteCollaborator adds a user to a project with the desired role. The
// invitee gets a notification in their inbox.
func (s *ProjectService) InviteCollaborator(input InviteCollaboratorInput) (*models.Collaborator, error) {
	project, err := s.GetProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	actorRole, err := s.authority.RoleOrBlocked(input.ProjectID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if err := CheckInvite(actorRole, input.Role); err != nil {
		return nil, err
	}

	collaborator := &models.Collaborator{
		ProjectID: input.ProjectID,
		UserID:    input.UserID,
		Role:      input.Role,
		AddedAt:   time.Now(),
	}

	if err := s.collabRepo.Add(collaborator); err != nil {
		if errors.Is(err, repository.ErrDuplicateCollaborator) {
			return nil, ErrCollaboratorExists
		}
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}

	notification := &models.Notification{
		UserID:   input.UserID,
		Text:     fmt.Sprintf("You were added to project %q as %s", project.Title, input.Role),
		Priority: 1,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		// The invite already committed; a lost notification is not worth
		// failing the request over.
		return collaborator, nil
	}

	return collaborator, nil
}

// ChangeCollaboratorRole changes a target's role. The rule check and the
// write run inside one guarded transaction, so a concurrent change against
// the same target cannot commit on a stale decision.
func (s *ProjectService) ChangeCollaboratorRole(actorID, projectID, targetID uint64, newRole models.Role) error {
	if _, err := s.GetProject(projectID); err != nil {
		return err
	}

	err := s.collabRepo.ChangeRoleGuarded(projectID, actorID, targetID, newRole,
		func(actorRole, targetRole models.Role) error {
			return CheckRoleChange(actorRole, targetRole, newRole)
		})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrNotCollaborator
		case errors.Is(err, repository.ErrStaleCollaborator):
			return ErrCollaboratorConflict
		default:
			return err
		}
	}
	return nil
}

// RemoveCollaborator removes a target from the project under the same
// guard discipline as role changes.
func (s *ProjectService) RemoveCollaborator(actorID, projectID, targetID uint64) error {
	if _, err := s.GetProject(projectID); err != nil {
		return err
	}

	err := s.collabRepo.RemoveGuarded(projectID, actorID, targetID, CheckRemoval)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrNotCollaborator
		case errors.Is(err, repository.ErrStaleCollaborator):
			return ErrCollaboratorConflict
		default:
			return err
		}
	}
	return nil
}
