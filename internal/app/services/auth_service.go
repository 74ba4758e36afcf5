package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/auth"
	"github.com/conghanh/luanho/internal/pkg/avatar"
)

// AuthService handles authentication operations
type AuthService struct {
	userStore  UserStore
	tokenStore TokenStore
	tx         TxRunner
	jwtService *auth.JWTService
	adminEmail string
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore UserStore,
	tokenStore TokenStore,
	tx TxRunner,
	jwtService *auth.JWTService,
	adminEmail string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userStore:  userStore,
		tokenStore: tokenStore,
		tx:         tx,
		jwtService: jwtService,
		adminEmail: strings.ToLower(adminEmail),
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

// roleFor maps the configured operator email to the admin role.
func (s *AuthService) roleFor(user *models.User) string {
	if s.adminEmail != "" && strings.EqualFold(user.Email, s.adminEmail) {
		return auth.RoleAdmin
	}
	return auth.RoleMember
}

// Register creates a password account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		UID:          uuid.New().String(),
		DisplayName:  req.DisplayName,
		PhotoURL:     avatar.PlaceholderURL(req.DisplayName),
		Points:       0,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Provider:     models.ProviderPassword,
	}

	var resp *dto.AuthResponse
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.userStore.Create(ctx, user); err != nil {
			return err
		}
		var issueErr error
		resp, issueErr = s.issueTokens(ctx, user)
		return issueErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("uid", user.UID).Msg("User registered")
	return resp, nil
}

// Login authenticates a password account. Unknown emails, OAuth-only
// accounts and wrong passwords all produce the same error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// OAuthLogin provisions or resolves the user bound to an external identity.
// Signing in repeatedly with the same identity always yields the same user.
func (s *AuthService) OAuthLogin(ctx context.Context, req *dto.OAuthLoginRequest) (*dto.AuthResponse, error) {
	provider := models.AuthProvider(req.Provider)

	user, err := s.userStore.GetByProviderIdentity(ctx, provider, req.ProviderID)
	if err == nil {
		return s.issueTokens(ctx, user)
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	// An existing password account with the same email adopts the identity
	// instead of duplicating the user.
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return s.issueTokens(ctx, existing)
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	photoURL := req.PhotoURL
	if photoURL == "" {
		photoURL = avatar.PlaceholderURL(req.DisplayName)
	}

	providerID := req.ProviderID
	user = &models.User{
		UID:         uuid.New().String(),
		DisplayName: req.DisplayName,
		PhotoURL:    photoURL,
		Points:      0,
		Email:       email,
		Provider:    provider,
		ProviderID:  &providerID,
	}

	var resp *dto.AuthResponse
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.userStore.Create(ctx, user); err != nil {
			return err
		}
		var issueErr error
		resp, issueErr = s.issueTokens(ctx, user)
		return issueErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("uid", user.UID).Str("provider", req.Provider).Msg("OAuth user provisioned")
	return resp, nil
}

// RefreshToken rotates a refresh token and issues a new pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userUID, err := s.tokenStore.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}

	var resp *dto.AuthResponse
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
			return err
		}
		var issueErr error
		resp, issueErr = s.issueTokens(ctx, user)
		return issueErr
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Logout revokes a refresh token. The access token simply ages out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenStore.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// issueTokens generates a token pair and persists the refresh token.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	role := s.roleFor(user)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user, role)
	if err != nil {
		s.logger.Error().Err(err).Str("uid", user.UID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.UID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Tokens: dto.TokenPair{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			ExpiresIn:        expiresIn,
			RefreshExpiresIn: refreshExpiresIn,
		},
		User: dto.UserResponse{
			UID:         user.UID,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
			Points:      user.Points,
			Email:       user.Email,
			IsAdmin:     role == auth.RoleAdmin,
			CreatedAt:   user.CreatedAt,
		},
	}, nil
}
