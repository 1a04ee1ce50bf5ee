package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nonetrello/nonetrello-api/internal/dto"
	"github.com/nonetrello/nonetrello-api/internal/middleware"
	"github.com/nonetrello/nonetrello-api/internal/response"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

// BoardHandler coordinates board HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// ListBoards lists a project's boards.
func (h *BoardHandler) ListBoards(c *gin.Context) {
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

	boards, err := h.boardService.ListBoards(userID, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"boards": dto.ToBoardDTOs(boards)})
}

// CreateBoard creates a board in a project.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type CreateBoardRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Title     string `json:"title" binding:"required"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(services.CreateBoardInput{
		ActorID:   userID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToBoardDTO(*board))
}

// RenameBoard retitles a board.
func (h *BoardHandler) RenameBoard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type RenameBoardRequest struct {
		BoardID uint64 `json:"board_id" binding:"required"`
		Title   string `json:"title" binding:"required"`
	}

	var req RenameBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.RenameBoard(userID, req.BoardID, req.Title)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, dto.ToBoardDTO(*board))
}

// DeleteBoard removes a board and its cards.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type DeleteBoardRequest struct {
		BoardID uint64 `json:"board_id" binding:"required"`
	}

	var req DeleteBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.boardService.DeleteBoard(userID, req.BoardID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
