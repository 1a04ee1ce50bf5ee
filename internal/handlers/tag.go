package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nonetrello/nonetrello-api/internal/middleware"
	"github.com/nonetrello/nonetrello-api/internal/response"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

// TagHandler coordinates project and card tag HTTP handlers.
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// ListProjectTags lists a project's tags.
func (h *TagHandler) ListProjectTags(c *gin.Context) {
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

	tags, err := h.tagService.ListProjectTags(userID, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Tag
	}
	response.Success(c, gin.H{"tags": names})
}

// AddProjectTag attaches a tag to a project.
func (h *TagHandler) AddProjectTag(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type AddTagRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Tag       string `json:"tag" binding:"required"`
	}

	var req AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tagService.AddProjectTag(userID, req.ProjectID, req.Tag); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, gin.H{"tag": req.Tag})
}

// RenameProjectTag replaces a project tag's text.
func (h *TagHandler) RenameProjectTag(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type RenameTagRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Tag       string `json:"tag" binding:"required"`
		NewTag    string `json:"new_tag" binding:"required"`
	}

	var req RenameTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tagService.RenameProjectTag(userID, req.ProjectID, req.Tag, req.NewTag); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"tag": req.NewTag})
}

// DeleteProjectTag detaches a tag from a project.
func (h *TagHandler) DeleteProjectTag(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type DeleteTagRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Tag       string `json:"tag" binding:"required"`
	}

	var req DeleteTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tagService.DeleteProjectTag(userID, req.ProjectID, req.Tag); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ListCardTags lists a card's tags.
func (h *TagHandler) ListCardTags(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	cardID, err := strconv.ParseUint(c.Query("card_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid card ID")
		return
	}

	tags, err := h.tagService.ListCardTags(userID, cardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Tag
	}
	response.Success(c, gin.H{"tags": names})
}

// AddCardTag attaches a tag to a card.
func (h *TagHandler) AddCardTag(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type AddTagRequest struct {
		CardID uint64 `json:"card_id" binding:"required"`
		Tag    string `json:"tag" binding:"required"`
	}

	var req AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tagService.AddCardTag(userID, req.CardID, req.Tag); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, gin.H{"tag": req.Tag})
}

// RenameCardTag replaces a card tag's text.
func (h *TagHandler) RenameCardTag(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type RenameTagRequest struct {
		CardID uint64 `json:"card_id" binding:"required"`
		Tag    string `json:"tag" binding:"required"`
		NewTag string `json:"new_tag" binding:"required"`
	}

	var req RenameTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tagService.RenameCardTag(userID, req.CardID, req.Tag, req.NewTag); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"tag": req.NewTag})
}

// DeleteCardTag detaches a tag from a card.
func (h *TagHandler) DeleteCardTag(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type DeleteTagRequest struct {
		CardID uint64 `json:"card_id" binding:"required"`
		Tag    string `json:"tag" binding:"required"`
	}

	var req DeleteTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tagService.DeleteCardTag(userID, req.CardID, req.Tag); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
