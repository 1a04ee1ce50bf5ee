package dto

import (
	"time"

	"github.com/nonetrello/nonetrello-api/internal/models"
)

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	ProjectID uint64    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CardDTO represents a card in API responses
type CardDTO struct {
	ID               uint64            `json:"id"`
	BoardID          uint64            `json:"board_id"`
	Title            string            `json:"title"`
	About            string            `json:"about"`
	BriefAbout       string            `json:"brief_about"`
	SellBy           *time.Time        `json:"sell_by"`
	Status           models.CardStatus `json:"status"`
	Priority         int               `json:"priority"`
	ExternalResource string            `json:"external_resource"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ResponsibleDTO represents a card appointment in API responses
type ResponsibleDTO struct {
	CardID      uint64    `json:"card_id"`
	UserID      uint64    `json:"user_id"`
	AppointedBy uint64    `json:"appointed_by"`
	AppointedAt time.Time `json:"appointed_at"`
	User        *UserDTO  `json:"user,omitempty"`
}

// NotificationDTO represents an inbox entry in API responses
type NotificationDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	Priority  int       `json:"priority"`
	Checked   bool      `json:"checked"`
	CreatedAt time.Time `json:"created_at"`
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	return BoardDTO{
		ID:        board.ID,
		Title:     board.Title,
		ProjectID: board.ProjectID,
		CreatedAt: board.CreatedAt,
	}
}

// ToBoardDTOs converts a slice of boards
func ToBoardDTOs(boards []models.Board) []BoardDTO {
	dtos := make([]BoardDTO, len(boards))
	for i, board := range boards {
		dtos[i] = ToBoardDTO(board)
	}
	return dtos
}

// ToCardDTO converts a Card model to CardDTO
func ToCardDTO(card models.Card) CardDTO {
	return CardDTO{
		ID:               card.ID,
		BoardID:          card.BoardID,
		Title:            card.Title,
		About:            card.About,
		BriefAbout:       card.BriefAbout,
		SellBy:           card.SellBy,
		Status:           card.Status,
		Priority:         card.Priority,
		ExternalResource: card.ExternalResource,
		CreatedAt:        card.CreatedAt,
		UpdatedAt:        card.UpdatedAt,
	}
}

// ToCardDTOs converts a slice of cards
func ToCardDTOs(cards []models.Card) []CardDTO {
	dtos := make([]CardDTO, len(cards))
	for i, card := range cards {
		dtos[i] = ToCardDTO(card)
	}
	return dtos
}

// ToResponsibleDTO converts a Responsible model to ResponsibleDTO
func ToResponsibleDTO(responsible models.Responsible) ResponsibleDTO {
	dto := ResponsibleDTO{
		CardID:      responsible.CardID,
		UserID:      responsible.UserID,
		AppointedBy: responsible.AppointedBy,
		AppointedAt: responsible.AppointedAt,
	}
	if responsible.User.ID != 0 {
		user := ToUserDTO(responsible.User)
		dto.User = &user
	}
	return dto
}

// ToNotificationDTO converts a Notification model to NotificationDTO
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        notification.ID,
		Text:      notification.Text,
		Priority:  notification.Priority,
		Checked:   notification.Checked,
		CreatedAt: notification.CreatedAt,
	}
}
