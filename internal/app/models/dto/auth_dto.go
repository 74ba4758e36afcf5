package dto

// RegisterRequest is the payload for email/password registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email" example:"linh.chi@example.com"`
	Password    string `json:"password" binding:"required,min=6" example:"secret123"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=64" example:"Linh Chi"`
}

// LoginRequest is the payload for email/password sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OAuthLoginRequest carries an externally verified OAuth identity. Provisioning
// the user row is idempotent: signing in twice never creates a second row.
type OAuthLoginRequest struct {
	Provider    string `json:"provider" binding:"required,oneof=google" example:"google"`
	ProviderID  string `json:"providerId" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName" binding:"required"`
	PhotoURL    string `json:"photoUrl"`
}

// RefreshTokenRequest asks for a rotated token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenPair carries the issued tokens and their lifetimes in seconds.
type TokenPair struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
}

// AuthResponse is returned from register, login and oauth endpoints.
type AuthResponse struct {
	Tokens TokenPair    `json:"tokens"`
	User   UserResponse `json:"user"`
}
