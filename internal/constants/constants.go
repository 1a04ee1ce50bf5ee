package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyClaims = "claims"
)

// Password length bounds enforced at registration and password change
const (
	MinPasswordLength = 8
	MaxPasswordLength = 64
)

// Field length bounds for work-tracking entities
const (
	MinProjectTitleLength = 3
	MaxProjectTitleLength = 16
	MaxDescriptionLength  = 1024

	MaxBoardTitleLength = 16

	MinCardTitleLength = 3
	MaxCardTitleLength = 16
	MaxCardAboutLength = 2048

	MaxTagLength = 64
)

// RefreshCookieName is the cookie carrying the refresh token. It is
// HTTP-only and scoped to the refresh path.
const RefreshCookieName = "refresh_token"

// RefreshCookiePath limits where the refresh cookie is sent.
const RefreshCookiePath = "/api/v1/refresh"
