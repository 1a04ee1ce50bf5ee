package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService is the per-user inbox. It carries no role logic.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// ListNotifications returns the user's inbox.
func (s *NotificationService) ListNotifications(userID uint64) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkChecked flags one of the user's notifications as seen.
func (s *NotificationService) MarkChecked(userID, notificationID uint64) error {
	if err := s.notificationRepo.MarkChecked(notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification: %w", err)
	}
	return nil
}
