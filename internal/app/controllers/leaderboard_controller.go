package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/app/services"
	"github.com/conghanh/luanho/internal/middleware"
)

// LeaderboardController handles the points standings
type LeaderboardController struct {
	leaderboardService *services.LeaderboardService
	logger             zerolog.Logger
}

// NewLeaderboardController creates a new LeaderboardController
func NewLeaderboardController(leaderboardService *services.LeaderboardService, logger zerolog.Logger) *LeaderboardController {
	return &LeaderboardController{
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// Top retrieves the leaderboard
// @Summary Get the points leaderboard
// @Description Returns the ten highest point totals, descending.
// @Tags leaderboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.LeaderboardEntry}
// @Router /leaderboard [get]
func (c *LeaderboardController) Top(ctx *gin.Context) {
	entries, err := c.leaderboardService.Top(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load leaderboard")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entries))
}
