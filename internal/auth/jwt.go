package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nonetrello/nonetrello-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AccessClaims are carried by the short-lived session token supplied in the
// Authorization header on each request.
type AccessClaims struct {
	Email string            `json:"email"`
	Role  models.GlobalRole `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by the long-lived refresh token. Version pins
// the token to the user record it was minted against; a password change
// bumps the version and invalidates outstanding refresh tokens.
type RefreshClaims struct {
	Email   string `json:"email"`
	Version uint64 `json:"version"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject of the claims.
func (c *AccessClaims) UserID() (uint64, error) {
	return strconv.ParseUint(c.Subject, 10, 64)
}

// UserID returns the numeric subject of the claims.
func (c *RefreshClaims) UserID() (uint64, error) {
	return strconv.ParseUint(c.Subject, 10, 64)
}

// Manager signs and verifies the two token kinds with a shared HS256 secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates a token manager.
func NewManager(secret string, accessTTLMin, refreshTTLDays int) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLMin) * time.Minute,
		refreshTTL: time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

// RefreshTTL exposes the refresh token lifetime for cookie max-age.
func (m *Manager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// NewAccessToken signs a session token for the user.
func (m *Manager) NewAccessToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// NewRefreshToken signs a refresh token pinned to the user's current version.
func (m *Manager) NewRefreshToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := RefreshClaims{
		Email:   user.Email,
		Version: user.Version,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseAccess verifies a session token and returns its claims.
func (m *Manager) ParseAccess(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.parse(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token and returns its claims.
func (m *Manager) ParseRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.parse(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *Manager) parse(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
