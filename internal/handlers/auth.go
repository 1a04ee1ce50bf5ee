package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nonetrello/nonetrello-api/internal/auth"
	"github.com/nonetrello/nonetrello-api/internal/constants"
	"github.com/nonetrello/nonetrello-api/internal/dto"
	"github.com/nonetrello/nonetrello-api/internal/middleware"
	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/response"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

// AuthHandler coordinates account and session HTTP handlers.
type AuthHandler struct {
	authService   *services.AuthService
	tokens        *auth.Manager
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens *auth.Manager, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToUserDTO(*user))
}

// Login authenticates a user, returns a session token, and sets the
// refresh cookie scoped to the refresh path.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Authenticate(services.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	accessToken, err := h.tokens.NewAccessToken(user)
	if err != nil {
		response.InternalError(c, "Failed to issue session token")
		return
	}
	refreshToken, err := h.tokens.NewRefreshToken(user)
	if err != nil {
		response.InternalError(c, "Failed to issue refresh token")
		return
	}

	c.SetCookie(
		constants.RefreshCookieName,
		refreshToken,
		int(h.tokens.RefreshTTL().Seconds()),
		constants.RefreshCookiePath,
		"",
		h.secureCookies,
		true,
	)

	response.Success(c, dto.LoginDTO{
		AccessToken: accessToken,
		User:        dto.ToUserDTO(*user),
	})
}

// Refresh exchanges a valid refresh cookie for a new session token. The
// token's version has to still match the account; a password change since
// issuance invalidates it.
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(constants.RefreshCookieName)
	if err != nil || raw == "" {
		response.Unauthorized(c, "Missing refresh token")
		return
	}

	claims, err := h.tokens.ParseRefresh(raw)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired refresh token")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		response.Unauthorized(c, "Invalid refresh token subject")
		return
	}

	user, err := h.authService.VerifyRefresh(userID, claims.Version)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	accessToken, err := h.tokens.NewAccessToken(user)
	if err != nil {
		response.InternalError(c, "Failed to issue session token")
		return
	}

	response.Success(c, dto.RefreshDTO{AccessToken: accessToken})
}

// GetClaims returns the caller's verified session claims.
func (h *AuthHandler) GetClaims(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}
	userID, _ := claims.UserID()

	response.Success(c, dto.ClaimsDTO{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	})
}

// EditUser edits the caller's nickname or password, or another user's
// global role when the caller outranks them.
func (h *AuthHandler) EditUser(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type EditRequest struct {
		UserID   *uint64            `json:"user_id"`
		Nickname *string            `json:"nickname"`
		Password *string            `json:"password"`
		Role     *models.GlobalRole `json:"role"`
	}

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	targetID := actorID
	if req.UserID != nil {
		targetID = *req.UserID
	}

	user, err := h.authService.EditUser(actorID, targetID, services.EditUserInput{
		Nickname: req.Nickname,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, dto.ToUserDTO(*user))
}

// DeleteUser soft-deletes the caller's account.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	if err := h.authService.SoftDelete(userID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
