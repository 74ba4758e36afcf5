package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUID         = "uid"
	ContextEmail       = "email"
	ContextDisplayName = "displayName"
	ContextRole        = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and stores the caller's identity in the
// request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			if errors.Is(err, auth.ErrExpiredToken) {
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid token is present and
// leaves the request anonymous otherwise. Used on public read endpoints that
// personalize their response.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := m.authenticate(c); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. Must run after JWTAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != auth.RoleAdmin {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Admin access required")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, error) {
	tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, err
	}
	return m.jwtService.ValidateToken(tokenString)
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUID, claims.UID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextDisplayName, claims.DisplayName)
	c.Set(ContextRole, claims.Role)
}

// CallerUID returns the authenticated caller's uid, empty for anonymous
// requests.
func CallerUID(c *gin.Context) string {
	return c.GetString(ContextUID)
}

// CallerIsAdmin reports whether the caller holds the admin role.
func CallerIsAdmin(c *gin.Context) bool {
	return c.GetString(ContextRole) == auth.RoleAdmin
}
