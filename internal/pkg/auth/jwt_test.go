package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conghanh/luanho/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func testUser() *models.User {
	return &models.User{
		UID:         "u1",
		Email:       "linh@example.com",
		DisplayName: "Linh Chi",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(testUser(), RoleMember)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "linh@example.com", claims.Email)
	assert.Equal(t, "Linh Chi", claims.DisplayName)
	assert.Equal(t, RoleMember, claims.Role)
	assert.False(t, claims.IsAdmin())
}

func TestAdminRoleClaims(t *testing.T) {
	service := newTestService(time.Hour)

	accessToken, _, _, _, err := service.GenerateTokenPair(testUser(), RoleAdmin)
	require.NoError(t, err)

	claims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestValidateExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)

	accessToken, _, _, _, err := service.GenerateTokenPair(testUser(), RoleMember)
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	accessToken, _, _, _, err := service.GenerateTokenPair(testUser(), RoleMember)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "another-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
	})
	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)

	_, err = ExtractBearerToken("Token abc")
	assert.Error(t, err)
}

func TestRefreshTokensAreOpaqueAndUnique(t *testing.T) {
	service := newTestService(time.Hour)

	_, first, _, _, err := service.GenerateTokenPair(testUser(), RoleMember)
	require.NoError(t, err)
	_, second, _, _, err := service.GenerateTokenPair(testUser(), RoleMember)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	// Opaque refresh tokens never validate as JWTs.
	_, err = service.ValidateToken(first)
	assert.Error(t, err)
}
