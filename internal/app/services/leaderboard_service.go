package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models/dto"
)

// LeaderboardSize is how many rows the standings expose.
const LeaderboardSize = 10

// LeaderboardService handles the points standings
type LeaderboardService struct {
	userStore UserStore
	logger    zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(userStore UserStore, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		userStore: userStore,
		logger:    logger.With().Str("service", "leaderboard").Logger(),
	}
}

// Top retrieves the highest point totals, ordered descending. Synthetic
// authors never appear since they have no users row.
func (s *LeaderboardService) Top(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	users, err := s.userStore.TopByPoints(ctx, LeaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, dto.LeaderboardEntry{
			UID:         user.UID,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
			Points:      user.Points,
		})
	}
	return entries, nil
}
