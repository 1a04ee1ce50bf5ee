package dto

import (
	"time"

	"github.com/nonetrello/nonetrello-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectWithRoleDTO represents a project together with the caller's role
type ProjectWithRoleDTO struct {
	ProjectDTO
	Role models.Role `json:"role"`
}

// CollaboratorDTO represents a collaborator in API responses
type CollaboratorDTO struct {
	ProjectID uint64      `json:"project_id"`
	UserID    uint64      `json:"user_id"`
	Role      models.Role `json:"role"`
	AddedAt   time.Time   `json:"added_at"`
	User      *UserDTO    `json:"user,omitempty"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectWithRoleDTO converts a membership to a project-plus-role DTO
func ToProjectWithRoleDTO(membership models.Collaborator) ProjectWithRoleDTO {
	return ProjectWithRoleDTO{
		ProjectDTO: ToProjectDTO(membership.Project),
		Role:       membership.Role,
	}
}

// ToCollaboratorDTO converts a Collaborator model to CollaboratorDTO
func ToCollaboratorDTO(collaborator models.Collaborator) CollaboratorDTO {
	dto := CollaboratorDTO{
		ProjectID: collaborator.ProjectID,
		UserID:    collaborator.UserID,
		Role:      collaborator.Role,
		AddedAt:   collaborator.AddedAt,
	}
	if collaborator.User.ID != 0 {
		user := ToUserDTO(collaborator.User)
		dto.User = &user
	}
	return dto
}
