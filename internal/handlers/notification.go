package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nonetrello/nonetrello-api/internal/dto"
	"github.com/nonetrello/nonetrello-api/internal/middleware"
	"github.com/nonetrello/nonetrello-api/internal/response"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

// NotificationHandler coordinates inbox HTTP handlers.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the caller's inbox.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	notifications, err := h.notificationService.ListNotifications(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	dtos := make([]dto.NotificationDTO, len(notifications))
	for i, notification := range notifications {
		dtos[i] = dto.ToNotificationDTO(notification)
	}
	response.Success(c, gin.H{"notifications": dtos})
}

// CheckNotification marks one of the caller's notifications as seen.
func (h *NotificationHandler) CheckNotification(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type CheckRequest struct {
		NotificationID uint64 `json:"notification_id" binding:"required"`
	}

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.notificationService.MarkChecked(userID, req.NotificationID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"checked": true})
}
