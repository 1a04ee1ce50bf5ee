package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/nonetrello/nonetrello-api/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:      42,
		Email:   "tokens@example.com",
		Role:    models.GlobalRoleNormal,
		Version: 3,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", 15, 30)

	token, err := m.NewAccessToken(testUser())
	require.NoError(t, err)

	claims, err := m.ParseAccess(token)
	require.NoError(t, err)
	require.Equal(t, "tokens@example.com", claims.Email)
	require.Equal(t, models.GlobalRoleNormal, claims.Role)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.EqualValues(t, 42, userID)
}

func TestRefreshTokenCarriesVersion(t *testing.T) {
	m := NewManager("secret", 15, 30)

	token, err := m.NewRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := m.ParseRefresh(token)
	require.NoError(t, err)
	require.EqualValues(t, 3, claims.Version)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := NewManager("secret-a", 15, 30)
	verifier := NewManager("secret-b", 15, 30)

	token, err := signer.NewAccessToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ParseAccess(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewManager("secret", -1, 30)

	token, err := m.NewAccessToken(testUser())
	require.NoError(t, err)

	_, err = m.ParseAccess(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	m := NewManager("secret", 15, 30)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "42"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseAccess(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}
