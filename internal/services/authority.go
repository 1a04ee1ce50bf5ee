package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/repository"
)

var (
	ErrRoleOutOfRange    = errors.New("role value out of range")
	ErrActorBlocked      = errors.New("you are blocked in this project")
	ErrAdminRequired     = errors.New("admin role required")
	ErrCannotAddStronger = errors.New("cannot add a member at or above your own role, or grant owner")
	ErrCannotActOnPeer   = errors.New("cannot act on an equal or stronger member")
	ErrCannotGrantPeer   = errors.New("cannot grant a role at or above your own")
	ErrNotInProject      = errors.New("user is not in this project")
	ErrNotCollaborator   = errors.New("collaborator not found")
)

// Role comparison is always actor versus target, never an absolute check.
// An admin must never demote or remove an owner, and must never hand out a
// role equal to or above their own. The Check functions below are the whole
// rule set; everything else in this file resolves roles for them.

// CheckInvite decides whether an actor with actorRole may add a new
// collaborator with the desired role.
func CheckInvite(actorRole, desired models.Role) error {
	if !desired.Valid() {
		return ErrRoleOutOfRange
	}
	if actorRole == models.RoleBlocked {
		return ErrActorBlocked
	}
	if actorRole < models.RoleAdmin {
		return ErrAdminRequired
	}
	if desired > actorRole || desired == models.RoleOwner {
		return ErrCannotAddStronger
	}
	return nil
}

// CheckRoleChange decides whether an actor may move a target to newRole.
// Owner is unreachable here as well: newRole must be strictly below the
// actor's own role, and nobody outranks an owner.
func CheckRoleChange(actorRole, targetRole, newRole models.Role) error {
	if !newRole.Valid() {
		return ErrRoleOutOfRange
	}
	if actorRole == models.RoleBlocked {
		return ErrActorBlocked
	}
	if actorRole <= targetRole {
		return ErrCannotActOnPeer
	}
	if newRole >= actorRole {
		return ErrCannotGrantPeer
	}
	return nil
}

// CheckRemoval decides whether an actor may remove a target.
func CheckRemoval(actorRole, targetRole models.Role) error {
	if actorRole == models.RoleBlocked || targetRole == models.RoleBlocked {
		return ErrNotInProject
	}
	if actorRole <= targetRole {
		return ErrCannotActOnPeer
	}
	return nil
}

// Authority resolves the roles the rule set needs. It owns every
// authorization decision in the system; the entity services never decide on
// their own.
type Authority struct {
	collabRepo repository.CollaboratorRepository
	boardRepo  repository.BoardRepository
	cardRepo   repository.CardRepository
}

// NewAuthority creates a new Authority.
func NewAuthority(collabRepo repository.CollaboratorRepository, boardRepo repository.BoardRepository, cardRepo repository.CardRepository) *Authority {
	return &Authority{
		collabRepo: collabRepo,
		boardRepo:  boardRepo,
		cardRepo:   cardRepo,
	}
}

// RoleOf returns the user's role in the project, failing with
// ErrNotCollaborator when no membership row exists. Use this where absence
// is an error state.
func (a *Authority) RoleOf(projectID, userID uint64) (models.Role, error) {
	collaborator, err := a.collabRepo.Find(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoleBlocked, ErrNotCollaborator
		}
		return models.RoleBlocked, fmt.Errorf("failed to resolve role: %w", err)
	}
	return collaborator.Role, nil
}

// RoleOrBlocked returns the user's role, treating absence the same as
// Blocked. Use this where a stranger and a blocked member behave alike.
func (a *Authority) RoleOrBlocked(projectID, userID uint64) (models.Role, error) {
	role, err := a.collabRepo.RoleOrBlocked(projectID, userID)
	if err != nil {
		return models.RoleBlocked, fmt.Errorf("failed to resolve role: %w", err)
	}
	return role, nil
}

// IsMember reports whether a membership row exists at all; the role may
// still be Blocked.
func (a *Authority) IsMember(projectID, userID uint64) (bool, error) {
	_, err := a.collabRepo.Find(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

// RequireMember allows actors with at least the Member role. Blocked
// members and strangers are refused alike.
func (a *Authority) RequireMember(projectID, userID uint64) error {
	role, err := a.RoleOrBlocked(projectID, userID)
	if err != nil {
		return err
	}
	if role < models.RoleMember {
		return ErrNotInProject
	}
	return nil
}

// CanEditProject allows actors holding Admin or above in the project. This
// is a coarser check than the collaborator rules: there is no target whose
// role needs comparing.
func (a *Authority) CanEditProject(actorID, projectID uint64) error {
	role, err := a.RoleOrBlocked(projectID, actorID)
	if err != nil {
		return err
	}
	if role < models.RoleAdmin {
		return ErrAdminRequired
	}
	return nil
}

// CanEditBoard resolves the board to its project and applies CanEditProject.
func (a *Authority) CanEditBoard(actorID, boardID uint64) error {
	board, err := a.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}
	return a.CanEditProject(actorID, board.ProjectID)
}

// CanEditCard resolves the card through its board to the project and
// applies CanEditProject.
func (a *Authority) CanEditCard(actorID, cardID uint64) error {
	projectID, err := a.ProjectOfCard(cardID)
	if err != nil {
		return err
	}
	return a.CanEditProject(actorID, projectID)
}

// ProjectOfBoard returns the project owning the board.
func (a *Authority) ProjectOfBoard(boardID uint64) (uint64, error) {
	board, err := a.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBoardNotFound
		}
		return 0, fmt.Errorf("failed to find board: %w", err)
	}
	return board.ProjectID, nil
}

// ProjectOfCard returns the project owning the card, via its board.
func (a *Authority) ProjectOfCard(cardID uint64) (uint64, error) {
	card, err := a.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCardNotFound
		}
		return 0, fmt.Errorf("failed to find card: %w", err)
	}
	return card.Board.ProjectID, nil
}
