package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/pkg/avatar"
	"github.com/conghanh/luanho/internal/pkg/realtime"
)

// syntheticDisplayName labels lab-minted authors whose posts no longer reveal
// a name.
const syntheticDisplayName = "Thành viên AI"

// ProfileService handles profile reads and edits
type ProfileService struct {
	userStore UserStore
	postStore PostStore
	publisher realtime.Publisher
	logger    zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userStore UserStore,
	postStore PostStore,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		userStore: userStore,
		postStore: postStore,
		publisher: publisher,
		logger:    logger.With().Str("service", "profile").Logger(),
	}
}

// GetProfile retrieves a profile with its computed rank. Synthetic ai-*
// authors have no users row, so their profile is assembled from their posts
// with a fixed point total.
func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*dto.ProfileResponse, error) {
	if models.IsSyntheticUID(uid) {
		return s.syntheticProfile(ctx, uid)
	}

	user, err := s.userStore.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	rank, err := s.rankForPoints(ctx, user.Points)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserResponse: dto.UserResponse{
			UID:         user.UID,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
			Points:      user.Points,
			CreatedAt:   user.CreatedAt,
		},
		Rank: rank,
	}, nil
}

// syntheticProfile assembles a stand-in profile for an AI author from their
// published posts.
func (s *ProfileService) syntheticProfile(ctx context.Context, uid string) (*dto.ProfileResponse, error) {
	name := syntheticDisplayName
	photoURL := avatar.PlaceholderURL(name)

	posts, err := s.postStore.ListByAuthor(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(posts) > 0 {
		name = posts[0].Author
		photoURL = posts[0].AuthorAvatar
	}

	rank, err := s.rankForPoints(ctx, SyntheticProfilePoints)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserResponse: dto.UserResponse{
			UID:         uid,
			DisplayName: name,
			PhotoURL:    photoURL,
			Points:      SyntheticProfilePoints,
		},
		Rank: rank,
	}, nil
}

// rankForPoints computes 1 + the number of users strictly above the total,
// so equal totals share a rank.
func (s *ProfileService) rankForPoints(ctx context.Context, points int) (int, error) {
	above, err := s.userStore.CountWithMorePoints(ctx, points)
	if err != nil {
		return 0, err
	}
	return above + 1, nil
}

// UpdateProfile changes the caller's display name
func (s *ProfileService) UpdateProfile(ctx context.Context, uid string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if err := s.userStore.UpdateProfile(ctx, uid, displayName); err != nil {
		return nil, err
	}

	s.logger.Info().Str("uid", uid).Msg("Profile updated")
	s.publisher.Publish(realtime.TopicUser(uid), realtime.EventUserUpdated, nil)

	return s.GetProfile(ctx, uid)
}

// UpdateAvatar replaces the caller's avatar
func (s *ProfileService) UpdateAvatar(ctx context.Context, uid string, req *dto.UpdateAvatarRequest) (*dto.ProfileResponse, error) {
	if err := s.userStore.UpdateAvatar(ctx, uid, req.PhotoURL); err != nil {
		return nil, err
	}

	s.publisher.Publish(realtime.TopicUser(uid), realtime.EventUserUpdated, nil)

	return s.GetProfile(ctx, uid)
}
