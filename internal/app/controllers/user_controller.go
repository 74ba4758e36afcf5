package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/app/services"
	"github.com/conghanh/luanho/internal/middleware"
)

// UserController handles profile operations
type UserController struct {
	profileService    *services.ProfileService
	postService       *services.PostService
	engagementService *services.EngagementService
	logger            zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(
	profileService *services.ProfileService,
	postService *services.PostService,
	engagementService *services.EngagementService,
	logger zerolog.Logger,
) *UserController {
	return &UserController{
		profileService:    profileService,
		postService:       postService,
		engagementService: engagementService,
		logger:            logger,
	}
}

// GetProfile retrieves a profile with rank
// @Summary Get a user profile
// @Description Returns the profile with its leaderboard rank. Synthetic ai- authors get a stand-in profile assembled from their posts.
// @Tags users
// @Produce json
// @Param uid path string true "User UID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{uid} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	profile, err := c.profileService.GetProfile(ctx.Request.Context(), ctx.Param("uid"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// ListUserPosts retrieves a user's posts
// @Summary List a user's posts
// @Tags users
// @Produce json
// @Param uid path string true "User UID"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse}
// @Router /users/{uid}/posts [get]
func (c *UserController) ListUserPosts(ctx *gin.Context) {
	posts, err := c.postService.ListByAuthor(ctx.Request.Context(), ctx.Param("uid"), middleware.CallerUID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// ListUserComments retrieves a user's comments, newest first
// @Summary List a user's comments
// @Tags users
// @Produce json
// @Param uid path string true "User UID"
// @Success 200 {object} dto.APIResponse{data=[]models.Comment}
// @Router /users/{uid}/comments [get]
func (c *UserController) ListUserComments(ctx *gin.Context) {
	comments, err := c.engagementService.ListUserComments(ctx.Request.Context(), ctx.Param("uid"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// UpdateProfile changes the caller's display name
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "New display name"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Security BearerAuth
// @Router /users/me [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), middleware.CallerUID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateAvatar replaces the caller's avatar
// @Summary Update the caller's avatar
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateAvatarRequest true "New avatar URL or data URI"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Security BearerAuth
// @Router /users/me/avatar [put]
func (c *UserController) UpdateAvatar(ctx *gin.Context) {
	var req dto.UpdateAvatarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.profileService.UpdateAvatar(ctx.Request.Context(), middleware.CallerUID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// MarkNotificationRead flags one of the caller's notifications as read
// @Summary Mark a notification read
// @Tags users
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (c *UserController) MarkNotificationRead(ctx *gin.Context) {
	err := c.engagementService.MarkNotificationRead(ctx.Request.Context(), ctx.Param("id"), middleware.CallerUID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Notification marked read"}))
}
