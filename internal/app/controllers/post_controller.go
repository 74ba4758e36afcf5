package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/app/services"
	"github.com/conghanh/luanho/internal/middleware"
)

// PostController handles post and engagement operations
type PostController struct {
	postService       *services.PostService
	engagementService *services.EngagementService
	logger            zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(
	postService *services.PostService,
	engagementService *services.EngagementService,
	logger zerolog.Logger,
) *PostController {
	return &PostController{
		postService:       postService,
		engagementService: engagementService,
		logger:            logger,
	}
}

// ListFeed retrieves the feed
// @Summary List posts
// @Description Lists posts ordered by recency or like count, optionally filtered by category or a search term over title, content and author name.
// @Tags posts
// @Produce json
// @Param sort query string false "Feed ordering" Enums(latest, trending) default(latest)
// @Param category query string false "Category filter"
// @Param search query string false "Search term"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse}
// @Router /posts [get]
func (c *PostController) ListFeed(ctx *gin.Context) {
	var req dto.FeedFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	posts, err := c.postService.ListFeed(ctx.Request.Context(), &req, middleware.CallerUID(ctx))
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list feed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPost retrieves one post
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	post, err := c.postService.GetPost(ctx.Request.Context(), ctx.Param("id"), middleware.CallerUID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost publishes a post
// @Summary Create a post
// @Description Publishes a post under a category and credits the author ten points.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or reserved category"
// @Security BearerAuth
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	post, err := c.postService.CreatePost(ctx.Request.Context(), middleware.CallerUID(ctx), &req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to create post")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// DeletePost removes a post
// @Summary Delete a post
// @Description Hard-deletes a post. Operator only. Comments stay behind and earned points are kept.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the operator"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	err := c.postService.DeletePost(ctx.Request.Context(), ctx.Param("id"),
		middleware.CallerUID(ctx), middleware.CallerIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Post deleted"}))
}

// LikePost records a like
// @Summary Like a post
// @Description Adds the caller to the post's like set and credits the caller one point. Liking twice is rejected.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse}
// @Failure 409 {object} dto.ErrorResponse "Already liked"
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (c *PostController) LikePost(ctx *gin.Context) {
	resp, err := c.engagementService.LikePost(ctx.Request.Context(), ctx.Param("id"), middleware.CallerUID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UnlikePost withdraws a like
// @Summary Unlike a post
// @Description Removes the caller from the like set. The point earned for the like is not removed.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse}
// @Failure 409 {object} dto.ErrorResponse "Not liked"
// @Security BearerAuth
// @Router /posts/{id}/like [delete]
func (c *PostController) UnlikePost(ctx *gin.Context) {
	resp, err := c.engagementService.UnlikePost(ctx.Request.Context(), ctx.Param("id"), middleware.CallerUID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListComments retrieves a post's comments
// @Summary List comments
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Comment}
// @Router /posts/{id}/comments [get]
func (c *PostController) ListComments(ctx *gin.Context) {
	comments, err := c.engagementService.ListComments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// AddComment appends a comment
// @Summary Comment on a post
// @Description Appends a comment, credits the commenter two points and notifies the post author, or the answered commenter for replies.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.AddCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=models.Comment}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	comment, err := c.engagementService.AddComment(ctx.Request.Context(), ctx.Param("id"), middleware.CallerUID(ctx), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("postID", ctx.Param("id")).Msg("Failed to add comment")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}
