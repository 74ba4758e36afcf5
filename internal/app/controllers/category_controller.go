package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/app/services"
	"github.com/conghanh/luanho/internal/middleware"
)

// CategoryController handles the category list
type CategoryController struct {
	categoryService *services.CategoryService
	logger          zerolog.Logger
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService, logger zerolog.Logger) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		logger:          logger,
	}
}

// List retrieves the effective category list
// @Summary List categories
// @Description Returns the default category set plus every category observed on posts, without the reserved admin value.
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CategoryListResponse}
// @Router /categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.categoryService.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list categories")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CategoryListResponse{Categories: categories}))
}

// Create registers a category
// @Summary Register a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category name"
// @Success 201 {object} dto.APIResponse{data=models.Category}
// @Failure 400 {object} dto.ErrorResponse "Reserved name"
// @Failure 409 {object} dto.ErrorResponse "Category already exists"
// @Security BearerAuth
// @Router /categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	category, err := c.categoryService.Create(ctx.Request.Context(), req.Name, middleware.CallerUID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(category))
}
