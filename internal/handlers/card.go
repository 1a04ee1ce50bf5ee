package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nonetrello/nonetrello-api/internal/dto"
	"github.com/nonetrello/nonetrello-api/internal/middleware"
	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/response"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

// CardHandler coordinates card and responsible HTTP handlers.
type CardHandler struct {
	cardService *services.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// GetCards fetches one card by id, or lists a board's cards.
func (h *CardHandler) GetCards(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid card ID")
			return
		}
		card, err := h.cardService.GetCard(userID, id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		response.Success(c, dto.ToCardDTO(*card))
		return
	}

	boardID, err := strconv.ParseUint(c.Query("board_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid board ID")
		return
	}

	cards, err := h.cardService.ListCards(userID, boardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"cards": dto.ToCardDTOs(cards)})
}

// CreateCard creates a card on a board.
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type CreateCardRequest struct {
		BoardID          uint64            `json:"board_id" binding:"required"`
		Title            string            `json:"title" binding:"required"`
		About            string            `json:"about"`
		BriefAbout       string            `json:"brief_about"`
		SellBy           *time.Time        `json:"sell_by"`
		Status           models.CardStatus `json:"status"`
		Priority         int               `json:"priority"`
		ExternalResource string            `json:"external_resource"`
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.CreateCard(services.CreateCardInput{
		ActorID:          userID,
		BoardID:          req.BoardID,
		Title:            req.Title,
		About:            req.About,
		BriefAbout:       req.BriefAbout,
		SellBy:           req.SellBy,
		Status:           req.Status,
		Priority:         req.Priority,
		ExternalResource: req.ExternalResource,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToCardDTO(*card))
}

// UpdateCard applies a partial edit to a card. Only supplied fields change.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type UpdateCardRequest struct {
		CardID           uint64             `json:"card_id" binding:"required"`
		Title            *string            `json:"title"`
		About            *string            `json:"about"`
		BriefAbout       *string            `json:"brief_about"`
		SellBy           *time.Time         `json:"sell_by"`
		ClearSellBy      bool               `json:"clear_sell_by"`
		Status           *models.CardStatus `json:"status"`
		Priority         *int               `json:"priority"`
		ExternalResource *string            `json:"external_resource"`
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(userID, req.CardID, services.UpdateCardInput{
		Title:            req.Title,
		About:            req.About,
		BriefAbout:       req.BriefAbout,
		SellBy:           req.SellBy,
		ClearSellBy:      req.ClearSellBy,
		Status:           req.Status,
		Priority:         req.Priority,
		ExternalResource: req.ExternalResource,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, dto.ToCardDTO(*card))
}

// DeleteCard removes a card.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type DeleteCardRequest struct {
		CardID uint64 `json:"card_id" binding:"required"`
	}

	var req DeleteCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cardService.DeleteCard(userID, req.CardID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ListResponsibles lists a card's appointments.
func (h *CardHandler) ListResponsibles(c *gin.Context) {
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

	responsibles, err := h.cardService.ListResponsibles(userID, cardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	dtos := make([]dto.ResponsibleDTO, len(responsibles))
	for i, responsible := range responsibles {
		dtos[i] = dto.ToResponsibleDTO(responsible)
	}
	response.Success(c, gin.H{"responsibles": dtos})
}

// AppointResponsible assigns a project member to a card.
func (h *CardHandler) AppointResponsible(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type AppointRequest struct {
		CardID uint64 `json:"card_id" binding:"required"`
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AppointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	responsible, err := h.cardService.AppointResponsible(userID, req.CardID, req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToResponsibleDTO(*responsible))
}

// DismissResponsible removes a user's appointments on a card.
func (h *CardHandler) DismissResponsible(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type DismissRequest struct {
		CardID uint64 `json:"card_id" binding:"required"`
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req DismissRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cardService.DismissResponsible(userID, req.CardID, req.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"dismissed": true})
}
