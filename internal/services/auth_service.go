package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nonetrello/nonetrello-api/internal/constants"
	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already in use")
	ErrInvalidPassword      = errors.New("password must be between 8 and 64 characters")
	ErrWrongPassword        = errors.New("incorrect login or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrStaleRefreshToken    = errors.New("refresh token no longer matches the account")
	ErrInvalidGlobalRole    = errors.New("unknown global role")
	ErrGlobalRoleTooLow     = errors.New("your role does not exceed the target's role")
	ErrNothingToEdit        = errors.New("no editable fields supplied")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, authentication and account edits.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// Register creates a new user. The plaintext password never reaches the
// store; only the bcrypt hash does.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength || len(input.Password) > constants.MaxPasswordLength {
		return nil, ErrInvalidPassword
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.GlobalRoleNormal,
		Version:      1,
	}

	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration can slip past the check above; the
		// unique index catches it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// AuthenticateInput holds the credentials for login.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials and returns the user. An unknown email
// and a wrong password are distinct failures: absence is NotFound, a hash
// mismatch is Forbidden.
func (s *AuthService) Authenticate(input AuthenticateInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// GetUser retrieves an active user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// VerifyRefresh checks a refresh token's version against the stored account
// and returns the user when they still agree.
func (s *AuthService) VerifyRefresh(userID, version uint64) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.Version != version {
		return nil, ErrStaleRefreshToken
	}
	return user, nil
}

// EditUserInput holds the optional fields of an account edit. Nil fields
// are left unchanged.
type EditUserInput struct {
	Nickname *string
	Password *string
	Role     *models.GlobalRole
}

// EditUser applies an account edit. Users always may change their own
// nickname and password. Changing someone's global role requires the
// actor's global role to strictly exceed the target's.
func (s *AuthService) EditUser(actorID, targetID uint64, input EditUserInput) (*models.User, error) {
	if input.Nickname == nil && input.Password == nil && input.Role == nil {
		return nil, ErrNothingToEdit
	}

	target, err := s.GetUser(targetID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidGlobalRole
		}
		actor, err := s.GetUser(actorID)
		if err != nil {
			return nil, err
		}
		if actor.Role.Rank() <= target.Role.Rank() {
			return nil, ErrGlobalRoleTooLow
		}
		target.Role = *input.Role
	}

	if input.Nickname != nil || input.Password != nil {
		if actorID != targetID {
			return nil, ErrGlobalRoleTooLow
		}
		if input.Nickname != nil {
			target.Nickname = *input.Nickname
		}
		if input.Password != nil {
			if len(*input.Password) < constants.MinPasswordLength || len(*input.Password) > constants.MaxPasswordLength {
				return nil, ErrInvalidPassword
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, ErrFailedToHashPassword
			}
			target.PasswordHash = string(hashed)
			// Outstanding refresh tokens die with the old version.
			target.Version++
		}
	}

	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return target, nil
}

// SoftDelete flags the account as deleted. Collaborator and card history
// referencing the user stays intact.
func (s *AuthService) SoftDelete(userID uint64) error {
	if err := s.userRepo.SoftDelete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
