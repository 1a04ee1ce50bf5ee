package dto

import (
	"time"

	"github.com/nonetrello/nonetrello-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never
// appears here.
type UserDTO struct {
	ID        uint64            `json:"id"`
	Email     string            `json:"email"`
	Role      models.GlobalRole `json:"role"`
	Nickname  string            `json:"nickname,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt,
	}
}

// LoginDTO is the body of a successful login.
type LoginDTO struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// RefreshDTO is the body of a successful token refresh.
type RefreshDTO struct {
	AccessToken string `json:"access_token"`
}

// ClaimsDTO mirrors the verified session token of the caller.
type ClaimsDTO struct {
	UserID uint64            `json:"user_id"`
	Email  string            `json:"email"`
	Role   models.GlobalRole `json:"role"`
}
