package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/auth"
)

func newAuthFixture(t *testing.T, adminEmail string) (*AuthService, *fakeUserStore, *fakeTokenStore) {
	t.Helper()
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	service := NewAuthService(users, tokens, &fakeTxRunner{}, jwtService, adminEmail, zerolog.Nop())
	return service, users, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	service, users, _ := newAuthFixture(t, "")

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:       "Linh.Chi@Example.com",
		Password:    "secret123",
		DisplayName: "Linh Chi",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, "linh.chi@example.com", resp.User.Email)
	assert.Equal(t, 0, resp.User.Points)
	assert.False(t, resp.User.IsAdmin)
	assert.NotEmpty(t, resp.User.PhotoURL)

	stored, err := users.GetByEmail(context.Background(), "linh.chi@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)

	login, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "linh.chi@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.UID, login.User.UID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthFixture(t, "")

	req := &dto.RegisterRequest{Email: "linh@example.com", Password: "secret123", DisplayName: "Linh"}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	service, _, _ := newAuthFixture(t, "")

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email: "linh@example.com", Password: "secret123", DisplayName: "Linh",
	})
	require.NoError(t, err)

	// Unknown email and wrong password are indistinguishable.
	_, err = service.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), &dto.LoginRequest{Email: "linh@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminEmailGetsAdminRole(t *testing.T) {
	service, _, _ := newAuthFixture(t, "admin@luanho.vn")

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email: "Admin@Luanho.VN", Password: "secret123", DisplayName: "Quản trị",
	})
	require.NoError(t, err)
	assert.True(t, resp.User.IsAdmin)
}

func TestOAuthLoginIsIdempotent(t *testing.T) {
	service, users, _ := newAuthFixture(t, "")

	req := &dto.OAuthLoginRequest{
		Provider:    "google",
		ProviderID:  "google-123",
		Email:       "linh@example.com",
		DisplayName: "Linh Chi",
		PhotoURL:    "https://example.com/linh.png",
	}

	first, err := service.OAuthLogin(context.Background(), req)
	require.NoError(t, err)

	second, err := service.OAuthLogin(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.User.UID, second.User.UID)

	assert.Len(t, users.users, 1)
}

func TestOAuthLoginAdoptsPasswordAccount(t *testing.T) {
	service, users, _ := newAuthFixture(t, "")

	registered, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email: "linh@example.com", Password: "secret123", DisplayName: "Linh Chi",
	})
	require.NoError(t, err)

	oauth, err := service.OAuthLogin(context.Background(), &dto.OAuthLoginRequest{
		Provider:    "google",
		ProviderID:  "google-123",
		Email:       "Linh@Example.com",
		DisplayName: "Linh Chi",
	})
	require.NoError(t, err)

	assert.Equal(t, registered.User.UID, oauth.User.UID)
	assert.Len(t, users.users, 1)
}

func TestRefreshTokenRotates(t *testing.T) {
	service, _, _ := newAuthFixture(t, "")

	registered, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email: "linh@example.com", Password: "secret123", DisplayName: "Linh Chi",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(context.Background(), registered.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)
	assert.Equal(t, registered.User.UID, refreshed.User.UID)

	// The old token is revoked by the rotation.
	_, err = service.RefreshToken(context.Background(), registered.Tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshUnknownToken(t *testing.T) {
	service, _, _ := newAuthFixture(t, "")

	_, err := service.RefreshToken(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	service, _, _ := newAuthFixture(t, "")

	registered, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email: "linh@example.com", Password: "secret123", DisplayName: "Linh Chi",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), registered.Tokens.RefreshToken))

	_, err = service.RefreshToken(context.Background(), registered.Tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// Logging out an already unknown token is not an error.
	require.NoError(t, service.Logout(context.Background(), "does-not-exist"))
}
