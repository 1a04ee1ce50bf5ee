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
	ErrCardNotFound        = errors.New("card not found")
	ErrInvalidCardTitle    = errors.New("title must be between 3 and 16 characters")
	ErrInvalidCardAbout    = errors.New("about text must not exceed 2048 characters")
	ErrResponsibleNotFound = errors.New("responsible not found")
)

// CardService provides business logic for cards and responsibles. Reads
// require membership in the owning project, writes require Admin.
type CardService struct {
	cardRepo  repository.CardRepository
	authority *Authority
}

// NewCardService creates a new CardService.
func NewCardService(cardRepo repository.CardRepository, authority *Authority) *CardService {
	return &CardService{
		cardRepo:  cardRepo,
		authority: authority,
	}
}

func validateCardTitle(title string) error {
	if len(title) < constants.MinCardTitleLength || len(title) > constants.MaxCardTitleLength {
		return ErrInvalidCardTitle
	}
	return nil
}

// ListCards lists a board's cards for a project member.
func (s *CardService) ListCards(actorID, boardID uint64) ([]models.Card, error) {
	projectID, err := s.authority.ProjectOfBoard(boardID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.RequireMember(projectID, actorID); err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// GetCard fetches a single card for a project member.
func (s *CardService) GetCard(actorID, cardID uint64) (*models.Card, error) {
	card, err := s.getCard(cardID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.RequireMember(card.Board.ProjectID, actorID); err != nil {
		return nil, err
	}
	return card, nil
}

// CreateCardInput represents parameters to create a card.
type CreateCardInput struct {
	ActorID          uint64
	BoardID          uint64
	Title            string
	About            string
	BriefAbout       string
	SellBy           *time.Time
	Status           models.CardStatus
	Priority         int
	ExternalResource string
}

// CreateCard creates a card on a board, gated on Admin.
func (s *CardService) CreateCard(input CreateCardInput) (*models.Card, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateCardTitle(title); err != nil {
		return nil, err
	}
	if len(input.About) > constants.MaxCardAboutLength {
		return nil, ErrInvalidCardAbout
	}

	if err := s.authority.CanEditBoard(input.ActorID, input.BoardID); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.CardStatusTodo
	}

	card := &models.Card{
		BoardID:          input.BoardID,
		Title:            title,
		About:            input.About,
		BriefAbout:       input.BriefAbout,
		SellBy:           input.SellBy,
		Status:           input.Status,
		Priority:         input.Priority,
		ExternalResource: input.ExternalResource,
	}
	if err := s.cardRepo.Create(card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return card, nil
}

// UpdateCardInput holds the optional fields of a card edit. Nil fields are
// left unchanged; supplied fields are re-validated against the creation
// rules.
type UpdateCardInput struct {
	Title            *string
	About            *string
	BriefAbout       *string
	SellBy           *time.Time
	ClearSellBy      bool
	Status           *models.CardStatus
	Priority         *int
	ExternalResource *string
}

// UpdateCard applies a partial edit, gated on Admin.
func (s *CardService) UpdateCard(actorID, cardID uint64, input UpdateCardInput) (*models.Card, error) {
	card, err := s.getCard(cardID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.CanEditProject(actorID, card.Board.ProjectID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := validateCardTitle(title); err != nil {
			return nil, err
		}
		card.Title = title
	}
	if input.About != nil {
		if len(*input.About) > constants.MaxCardAboutLength {
			return nil, ErrInvalidCardAbout
		}
		card.About = *input.About
	}
	if input.BriefAbout != nil {
		card.BriefAbout = *input.BriefAbout
	}
	if input.ClearSellBy {
		card.SellBy = nil
	} else if input.SellBy != nil {
		card.SellBy = input.SellBy
	}
	if input.Status != nil {
		card.Status = *input.Status
	}
	if input.Priority != nil {
		card.Priority = *input.Priority
	}
	if input.ExternalResource != nil {
		card.ExternalResource = *input.ExternalResource
	}

	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return card, nil
}

// DeleteCard removes a card, gated on Admin.
func (s *CardService) DeleteCard(actorID, cardID uint64) error {
	card, err := s.getCard(cardID)
	if err != nil {
		return err
	}
	if err := s.authority.CanEditProject(actorID, card.Board.ProjectID); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(cardID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// AppointResponsible assigns a project member to a card, gated on Admin.
func (s *CardService) AppointResponsible(actorID, cardID, userID uint64) (*models.Responsible, error) {
	card, err := s.getCard(cardID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.CanEditProject(actorID, card.Board.ProjectID); err != nil {
		return nil, err
	}
	// The appointee has to be in the project; blocked members cannot be
	// made responsible for anything.
	if err := s.authority.RequireMember(card.Board.ProjectID, userID); err != nil {
		return nil, err
	}

	responsible := &models.Responsible{
		CardID:      cardID,
		UserID:      userID,
		AppointedBy: actorID,
		AppointedAt: time.Now(),
	}
	if err := s.cardRepo.AddResponsible(responsible); err != nil {
		return nil, fmt.Errorf("failed to appoint responsible: %w", err)
	}
	return responsible, nil
}

// DismissResponsible removes a user's appointments on a card, gated on Admin.
func (s *CardService) DismissResponsible(actorID, cardID, userID uint64) error {
	card, err := s.getCard(cardID)
	if err != nil {
		return err
	}
	if err := s.authority.CanEditProject(actorID, card.Board.ProjectID); err != nil {
		return err
	}
	if err := s.cardRepo.RemoveResponsible(cardID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResponsibleNotFound
		}
		return fmt.Errorf("failed to dismiss responsible: %w", err)
	}
	return nil
}

// ListResponsibles lists a card's appointments for a project member.
func (s *CardService) ListResponsibles(actorID, cardID uint64) ([]models.Responsible, error) {
	card, err := s.getCard(cardID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.RequireMember(card.Board.ProjectID, actorID); err != nil {
		return nil, err
	}
	responsibles, err := s.cardRepo.ListResponsibles(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responsibles: %w", err)
	}
	return responsibles, nil
}

func (s *CardService) getCard(cardID uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}
