package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nonetrello/nonetrello-api/internal/dto"
	"github.com/nonetrello/nonetrello-api/internal/middleware"
	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/response"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

// ProjectHandler coordinates project and collaborator HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// GetProjects fetches one project by id or title, or lists the caller's
// memberships when no selector is given. Fetch-by-id works without a
// session; listing requires one.
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid project ID")
			return
		}
		project, err := h.projectService.GetProject(id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		response.Success(c, dto.ToProjectDTO(*project))
		return
	}

	if title := c.Query("title"); title != "" {
		project, err := h.projectService.GetProjectByTitle(title)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		response.Success(c, dto.ToProjectDTO(*project))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	memberships, err := h.projectService.ListProjectsForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	projects := make([]dto.ProjectWithRoleDTO, len(memberships))
	for i, membership := range memberships {
		projects[i] = dto.ToProjectWithRoleDTO(membership)
	}
	response.Success(c, gin.H{"projects": projects})
}

// CreateProject creates a new project with the caller as Owner.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToProjectDTO(*project))
}

// UpdateProject edits a project's title or description.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type UpdateProjectRequest struct {
		ProjectID   uint64  `json:"project_id" binding:"required"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(userID, req.ProjectID, services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project; Owner only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type DeleteProjectRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
	}

	var req DeleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.DeleteProject(userID, req.ProjectID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ListCollaborators lists a project's collaborators.
func (h *ProjectHandler) ListCollaborators(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	projectID, err := strconv.ParseUint(c.Query("project_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	collaborators, err := h.projectService.ListCollaborators(userID, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	dtos := make([]dto.CollaboratorDTO, len(collaborators))
	for i, collaborator := range collaborators {
		dtos[i] = dto.ToCollaboratorDTO(collaborator)
	}
	response.Success(c, gin.H{"collaborators": dtos})
}

// InviteCollaborator adds a user to a project with the desired role.
func (h *ProjectHandler) InviteCollaborator(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type InviteRequest struct {
		ProjectID uint64      `json:"project_id" binding:"required"`
		UserID    uint64      `json:"user_id" binding:"required"`
		Role      models.Role `json:"role"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	collaborator, err := h.projectService.InviteCollaborator(services.InviteCollaboratorInput{
		ActorID:   userID,
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
		Role:      req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToCollaboratorDTO(*collaborator))
}

// ChangeCollaboratorRole changes a collaborator's role.
func (h *ProjectHandler) ChangeCollaboratorRole(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type ChangeRoleRequest struct {
		ProjectID uint64      `json:"project_id" binding:"required"`
		UserID    uint64      `json:"user_id" binding:"required"`
		Role      models.Role `json:"role"`
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.ChangeCollaboratorRole(userID, req.ProjectID, req.UserID, req.Role); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"changed": true})
}

// RemoveCollaborator removes a collaborator from a project.
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type RemoveRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		UserID    uint64 `json:"user_id" binding:"required"`
	}

	var req RemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.RemoveCollaborator(userID, req.ProjectID, req.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"removed": true})
}
