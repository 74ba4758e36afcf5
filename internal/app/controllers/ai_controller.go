package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/app/services"
	"github.com/conghanh/luanho/internal/middleware"
)

// AIController handles assisted drafting and the operator lab
type AIController struct {
	aiLabService *services.AILabService
	logger       zerolog.Logger
}

// NewAIController creates a new AIController
func NewAIController(aiLabService *services.AILabService, logger zerolog.Logger) *AIController {
	return &AIController{
		aiLabService: aiLabService,
		logger:       logger,
	}
}

// SuggestTitle asks for a title idea
// @Summary Suggest a post title
// @Description Returns a generated title for the category, or a fixed fallback when the generative service fails.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.SuggestTitleRequest true "Category"
// @Success 200 {object} dto.APIResponse{data=dto.SuggestTitleResponse}
// @Security BearerAuth
// @Router /ai/suggest-title [post]
func (c *AIController) SuggestTitle(ctx *gin.Context) {
	var req dto.SuggestTitleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	title := c.aiLabService.SuggestTitle(ctx.Request.Context(), req.Category)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuggestTitleResponse{Title: title}))
}

// DraftContent asks for a full draft for a chosen title
// @Summary Draft post content
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.DraftContentRequest true "Title and category"
// @Success 200 {object} dto.APIResponse{data=dto.DraftContentResponse}
// @Failure 503 {object} dto.ErrorResponse "Generative service unavailable"
// @Security BearerAuth
// @Router /ai/draft [post]
func (c *AIController) DraftContent(ctx *gin.Context) {
	var req dto.DraftContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	content, err := c.aiLabService.DraftContent(ctx.Request.Context(), req.Title, req.Category)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Draft generation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DraftContentResponse{Content: content}))
}

// RefineContent rewrites draft content
// @Summary Refine post content
// @Description Rewrites the content in the community's voice, returning it unchanged when the generative service fails.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.RefineContentRequest true "Current content"
// @Success 200 {object} dto.APIResponse{data=dto.RefineContentResponse}
// @Security BearerAuth
// @Router /ai/refine [post]
func (c *AIController) RefineContent(ctx *gin.Context) {
	var req dto.RefineContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	content := c.aiLabService.RefineContent(ctx.Request.Context(), req.Content)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.RefineContentResponse{Content: content}))
}

// LabGenerate produces a complete synthetic draft
// @Summary Generate a lab draft
// @Description Returns a full draft with author name and seed comments. Failures degrade to an empty draft.
// @Tags ai-lab
// @Accept json
// @Produce json
// @Param request body dto.LabGenerateRequest true "Topic and category"
// @Success 200 {object} dto.APIResponse{data=genai.Result}
// @Security BearerAuth
// @Router /ai/lab/generate [post]
func (c *AIController) LabGenerate(ctx *gin.Context) {
	var req dto.LabGenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result := c.aiLabService.Generate(ctx.Request.Context(), req.Topic, req.Category)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// LabPublish publishes a lab draft
// @Summary Publish a lab draft
// @Description Publishes the draft as a post under a minted ai- identity with a random seeded like count and one comment per seed entry. No points are awarded.
// @Tags ai-lab
// @Accept json
// @Produce json
// @Param request body dto.LabPublishRequest true "Draft to publish"
// @Success 201 {object} dto.APIResponse{data=dto.LabPublishResponse}
// @Security BearerAuth
// @Router /ai/lab/publish [post]
func (c *AIController) LabPublish(ctx *gin.Context) {
	var req dto.LabPublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.aiLabService.Publish(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to publish lab draft")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}
