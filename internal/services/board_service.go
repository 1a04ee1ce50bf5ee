package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nonetrello/nonetrello-api/internal/constants"
	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/repository"
)

var (
	ErrBoardNotFound     = errors.New("board not found")
	ErrInvalidBoardTitle = errors.New("title must be between 1 and 16 characters")
)

// BoardService provides business logic for boards. Reads require
// membership, writes require Admin.
type BoardService struct {
	boardRepo repository.BoardRepository
	authority *Authority
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, authority *Authority) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		authority: authority,
	}
}

// ListBoards lists a project's boards for a member.
func (s *BoardService) ListBoards(actorID, projectID uint64) ([]models.Board, error) {
	if err := s.authority.RequireMember(projectID, actorID); err != nil {
		return nil, err
	}
	boards, err := s.boardRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// CreateBoardInput represents parameters to create a board.
type CreateBoardInput struct {
	ActorID   uint64
	ProjectID uint64
	Title     string
}

// CreateBoard creates a board in a project, gated on Admin.
func (s *BoardService) CreateBoard(input CreateBoardInput) (*models.Board, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len(title) > constants.MaxBoardTitleLength {
		return nil, ErrInvalidBoardTitle
	}

	if err := s.authority.CanEditProject(input.ActorID, input.ProjectID); err != nil {
		return nil, err
	}

	board := &models.Board{
		Title:     title,
		ProjectID: input.ProjectID,
	}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

// RenameBoard retitles a board, gated on Admin of the owning project.
func (s *BoardService) RenameBoard(actorID, boardID uint64, title string) (*models.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > constants.MaxBoardTitleLength {
		return nil, ErrInvalidBoardTitle
	}

	board, err := s.getBoard(boardID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.CanEditProject(actorID, board.ProjectID); err != nil {
		return nil, err
	}

	board.Title = title
	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// DeleteBoard removes a board and its cards, gated on Admin.
func (s *BoardService) DeleteBoard(actorID, boardID uint64) error {
	board, err := s.getBoard(boardID)
	if err != nil {
		return err
	}
	if err := s.authority.CanEditProject(actorID, board.ProjectID); err != nil {
		return err
	}
	if err := s.boardRepo.Delete(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

func (s *BoardService) getBoard(boardID uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}
