package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/realtime"
)

// notificationExcerptLen caps the comment text carried in a notification.
const notificationExcerptLen = 50

// EngagementService handles likes, comments, the notifications they produce
// and the points they award
type EngagementService struct {
	postStore         PostStore
	commentStore      CommentStore
	userStore         UserStore
	notificationStore NotificationStore
	tx                TxRunner
	publisher         realtime.Publisher
	logger            zerolog.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	postStore PostStore,
	commentStore CommentStore,
	userStore UserStore,
	notificationStore NotificationStore,
	tx TxRunner,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) *EngagementService {
	return &EngagementService{
		postStore:         postStore,
		commentStore:      commentStore,
		userStore:         userStore,
		notificationStore: notificationStore,
		tx:                tx,
		publisher:         publisher,
		logger:            logger.With().Str("service", "engagement").Logger(),
	}
}

// LikePost records a like, credits the liker and notifies the post author.
// The membership update, point award and notification commit as one unit.
func (s *EngagementService) LikePost(ctx context.Context, postID, uid string) (*dto.LikeResponse, error) {
	liker, err := s.userStore.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.postStore.AddLike(ctx, postID, uid); err != nil {
			return err
		}

		if !models.IsSyntheticUID(uid) {
			if _, err := s.userStore.AddPoints(ctx, uid, PointsPerLike); err != nil {
				return err
			}
		}

		if post.AuthorUID != uid && !models.IsSyntheticUID(post.AuthorUID) {
			return s.notificationStore.Create(ctx, &models.Notification{
				ID:         uuid.New().String(),
				ToUID:      post.AuthorUID,
				FromUID:    liker.UID,
				FromName:   liker.DisplayName,
				FromAvatar: liker.PhotoURL,
				Type:       models.NotificationLike,
				PostID:     postID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishPostCounters(ctx, postID)
	s.publisher.Publish(realtime.TopicUser(uid), realtime.EventUserUpdated, nil)
	s.publisher.Publish(realtime.TopicLeaderboard, realtime.EventUserUpdated, nil)

	return s.likeResponse(ctx, postID, uid)
}

// UnlikePost withdraws a like. The point the liker earned for it is not
// withdrawn with it.
func (s *EngagementService) UnlikePost(ctx context.Context, postID, uid string) (*dto.LikeResponse, error) {
	if _, err := s.postStore.RemoveLike(ctx, postID, uid); err != nil {
		return nil, err
	}

	s.publishPostCounters(ctx, postID)

	return s.likeResponse(ctx, postID, uid)
}

func (s *EngagementService) likeResponse(ctx context.Context, postID, uid string) (*dto.LikeResponse, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{
		PostID:  postID,
		Likes:   post.Likes,
		LikedBy: post.LikedBy,
		Liked:   post.LikedByUser(uid),
	}, nil
}

// AddComment appends a comment, credits the commenter and notifies the post
// author, or the parent comment's author for replies.
func (s *EngagementService) AddComment(ctx context.Context, postID, uid string, req *dto.AddCommentRequest) (*models.Comment, error) {
	commenter, err := s.userStore.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// A reply must point at a comment that exists on this post.
	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.commentStore.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperrors.ErrCommentNotFound
		}
	}

	comment := &models.Comment{
		ID:           uuid.New().String(),
		PostID:       postID,
		AuthorUID:    commenter.UID,
		Author:       commenter.DisplayName,
		AuthorAvatar: commenter.PhotoURL,
		Content:      strings.TrimSpace(req.Content),
		ParentID:     req.ParentID,
		ReplyToName:  req.ReplyToName,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.commentStore.Create(ctx, comment); err != nil {
			return err
		}
		if _, err := s.postStore.IncrementComments(ctx, postID); err != nil {
			return err
		}
		if !models.IsSyntheticUID(uid) {
			if _, err := s.userStore.AddPoints(ctx, uid, PointsPerComment); err != nil {
				return err
			}
		}
		return s.notifyComment(ctx, post, commenter, req)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(realtime.TopicPost(postID), realtime.EventCommentCreated, comment)
	s.publishPostCounters(ctx, postID)
	s.publisher.Publish(realtime.TopicUser(uid), realtime.EventUserUpdated, nil)
	s.publisher.Publish(realtime.TopicLeaderboard, realtime.EventUserUpdated, nil)

	return comment, nil
}

// notifyComment writes the notification for a new comment. Replies notify the
// answered commenter, top-level comments notify the post author. Nobody is
// notified about their own activity, and synthetic identities receive nothing.
func (s *EngagementService) notifyComment(ctx context.Context, post *models.Post, commenter *models.User, req *dto.AddCommentRequest) error {
	toUID := post.AuthorUID
	kind := models.NotificationComment
	if req.ReplyToUid != nil && *req.ReplyToUid != "" {
		toUID = *req.ReplyToUid
		kind = models.NotificationReply
	}

	if toUID == commenter.UID || models.IsSyntheticUID(toUID) {
		return nil
	}

	excerpt := commentExcerpt(req.Content)
	return s.notificationStore.Create(ctx, &models.Notification{
		ID:         uuid.New().String(),
		ToUID:      toUID,
		FromUID:    commenter.UID,
		FromName:   commenter.DisplayName,
		FromAvatar: commenter.PhotoURL,
		Type:       kind,
		PostID:     post.ID,
		Content:    &excerpt,
	})
}

// commentExcerpt shortens comment text for notification payloads.
func commentExcerpt(content string) string {
	runes := []rune(strings.TrimSpace(content))
	if len(runes) <= notificationExcerptLen {
		return string(runes)
	}
	return string(runes[:notificationExcerptLen]) + "..."
}

// ListComments retrieves a post's comments in creation order
func (s *EngagementService) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.commentStore.ListByPost(ctx, postID)
}

// ListUserComments retrieves a user's comments, newest first
func (s *EngagementService) ListUserComments(ctx context.Context, uid string) ([]*models.Comment, error) {
	return s.commentStore.ListByAuthor(ctx, uid)
}

// MarkNotificationRead flags one of the caller's notifications as read
func (s *EngagementService) MarkNotificationRead(ctx context.Context, notificationID, uid string) error {
	return s.notificationStore.MarkRead(ctx, notificationID, uid)
}

// publishPostCounters pushes the post's fresh counters to its topic and the
// feed.
func (s *EngagementService) publishPostCounters(ctx context.Context, postID string) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return
	}
	s.publisher.Publish(realtime.TopicPost(postID), realtime.EventPostUpdated, post)
	s.publisher.Publish(realtime.TopicFeed, realtime.EventPostUpdated, post)
}
