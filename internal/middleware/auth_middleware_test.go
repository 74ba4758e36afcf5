package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/auth"
)

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
	})
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		UID:         "u1",
		Email:       "linh@example.com",
		DisplayName: "Linh Chi",
	}, role)
	require.NoError(t, err)
	return accessToken
}

func newProtectedRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CallerUID(c)})
	})
	router.GET("/admin", m.JWTAuth(), m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/open", m.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CallerUID(c)})
	})
	return router
}

func doRequest(router *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := newProtectedRouter(NewAuthMiddleware(jwtService))

	w := doRequest(router, "/protected", tokenFor(t, jwtService, auth.RoleMember))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"u1"`)
}

func TestJWTAuthRejectsMissingAndGarbageTokens(t *testing.T) {
	router := newProtectedRouter(NewAuthMiddleware(newTestJWTService(time.Hour)))

	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "/protected", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "/protected", "garbage").Code)
}

func TestJWTAuthReportsExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	router := newProtectedRouter(NewAuthMiddleware(jwtService))

	w := doRequest(router, "/protected", tokenFor(t, jwtService, auth.RoleMember))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(dto.ErrorCodeExpiredToken))
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := newProtectedRouter(NewAuthMiddleware(jwtService))

	assert.Equal(t, http.StatusForbidden, doRequest(router, "/admin", tokenFor(t, jwtService, auth.RoleMember)).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "/admin", tokenFor(t, jwtService, auth.RoleAdmin)).Code)
}

func TestOptionalAuth(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := newProtectedRouter(NewAuthMiddleware(jwtService))

	anonymous := doRequest(router, "/open", "")
	assert.Equal(t, http.StatusOK, anonymous.Code)
	assert.Contains(t, anonymous.Body.String(), `"uid":""`)

	authed := doRequest(router, "/open", tokenFor(t, jwtService, auth.RoleMember))
	assert.Equal(t, http.StatusOK, authed.Code)
	assert.Contains(t, authed.Body.String(), `"uid":"u1"`)

	// A bad token downgrades to anonymous instead of failing.
	invalid := doRequest(router, "/open", "garbage")
	assert.Equal(t, http.StatusOK, invalid.Code)
	assert.Contains(t, invalid.Body.String(), `"uid":""`)
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrPostNotFound, http.StatusNotFound},
		{apperrors.ErrUserNotFound, http.StatusNotFound},
		{apperrors.ErrAlreadyLiked, http.StatusConflict},
		{apperrors.ErrNotLiked, http.StatusConflict},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{apperrors.ErrCategoryExists, http.StatusConflict},
		{apperrors.ErrCategoryReserved, http.StatusBadRequest},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		{apperrors.ErrTokenNotFound, http.StatusUnauthorized},
		{apperrors.ErrPermissionDenied, http.StatusForbidden},
		{apperrors.ErrAIUnavailable, http.StatusServiceUnavailable},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		HandleAPIError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}
