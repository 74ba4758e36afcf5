package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/app/repositories"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/realtime"
)

// PostService handles post publishing and the feed
type PostService struct {
	postStore PostStore
	userStore UserStore
	tx        TxRunner
	publisher realtime.Publisher
	logger    zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postStore PostStore,
	userStore UserStore,
	tx TxRunner,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		postStore: postStore,
		userStore: userStore,
		tx:        tx,
		publisher: publisher,
		logger:    logger.With().Str("service", "post").Logger(),
	}
}

// CreatePost publishes a post and credits the author. The post and the point
// award commit together or not at all.
func (s *PostService) CreatePost(ctx context.Context, authorUID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if strings.EqualFold(strings.TrimSpace(req.Category), models.CategoryAdminSentinel) {
		return nil, apperrors.ErrCategoryReserved
	}

	author, err := s.userStore.GetByUID(ctx, authorUID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		Category:     strings.TrimSpace(req.Category),
		Author:       author.DisplayName,
		AuthorAvatar: author.PhotoURL,
		AuthorUID:    author.UID,
		LikedBy:      []string{},
	}

	var newPoints int
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.postStore.Create(ctx, post); err != nil {
			return err
		}
		if models.IsSyntheticUID(author.UID) {
			return nil
		}
		newPoints, err = s.userStore.AddPoints(ctx, author.UID, PointsPerPost)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("postID", post.ID).Str("uid", author.UID).Msg("Post created")

	resp := dto.NewPostResponse(*post, authorUID)
	s.publisher.Publish(realtime.TopicFeed, realtime.EventPostCreated, post)
	s.publisher.Publish(realtime.TopicUser(author.UID), realtime.EventUserUpdated, map[string]any{
		"uid": author.UID, "points": newPoints,
	})
	s.publisher.Publish(realtime.TopicLeaderboard, realtime.EventUserUpdated, nil)

	return &resp, nil
}

// GetPost retrieves one post decorated with the viewer's like state
func (s *PostService) GetPost(ctx context.Context, postID, viewerUID string) (*dto.PostResponse, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPostResponse(*post, viewerUID)
	return &resp, nil
}

// feedWindow caps how many posts one feed query returns. There is no
// pagination, so the window keeps the payload bounded as the corpus grows.
const feedWindow = 200

// ListFeed retrieves the feed with the requested ordering and filters
func (s *PostService) ListFeed(ctx context.Context, req *dto.FeedFilterRequest, viewerUID string) ([]dto.PostResponse, error) {
	sort := models.FeedSort(req.Sort)
	if sort != models.SortTrending {
		sort = models.SortLatest
	}

	posts, err := s.postStore.List(ctx, repositories.PostFilter{
		Sort:     sort,
		Category: strings.TrimSpace(req.Category),
		Search:   strings.TrimSpace(req.Search),
		Limit:    feedWindow,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, dto.NewPostResponse(*post, viewerUID))
	}
	return responses, nil
}

// ListByAuthor retrieves all posts by one author, newest first
func (s *PostService) ListByAuthor(ctx context.Context, authorUID, viewerUID string) ([]dto.PostResponse, error) {
	posts, err := s.postStore.ListByAuthor(ctx, authorUID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, dto.NewPostResponse(*post, viewerUID))
	}
	return responses, nil
}

// DeletePost removes a post. Deletion is an operator action, authors included,
// and earned points stay with the author. Comments are left orphaned.
func (s *PostService) DeletePost(ctx context.Context, postID, actorUID string, isAdmin bool) error {
	if !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	if _, err := s.postStore.GetByID(ctx, postID); err != nil {
		return err
	}

	if err := s.postStore.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info().Str("postID", postID).Str("actorUID", actorUID).Msg("Post deleted")

	s.publisher.Publish(realtime.TopicFeed, realtime.EventPostDeleted, map[string]any{"id": postID})
	s.publisher.Publish(realtime.TopicPost(postID), realtime.EventPostDeleted, map[string]any{"id": postID})

	return nil
}
