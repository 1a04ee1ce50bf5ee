package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nonetrello/nonetrello-api/internal/auth"
	"github.com/nonetrello/nonetrello-api/internal/constants"
	"github.com/nonetrello/nonetrello-api/internal/response"
)

// RequireAuth verifies the bearer session token from the Authorization
// header and stores the caller's identity in the request context.
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.Unauthorized(c, "Missing bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.ParseAccess(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired session token")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Unauthorized(c, "Invalid session token subject")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid bearer token is
// present, and lets the request through either way. Handlers that support
// guest access decide what anonymity means for them.
func OptionalAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if found && token != "" {
			if claims, err := tokens.ParseAccess(token); err == nil {
				if userID, err := claims.UserID(); err == nil {
					c.Set(constants.ContextKeyUserID, userID)
					c.Set(constants.ContextKeyClaims, claims)
				}
			}
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint64)
	return userID, ok
}

// GetClaims retrieves the verified session claims from context
func GetClaims(c *gin.Context) (*auth.AccessClaims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.AccessClaims)
	return claims, ok
}
