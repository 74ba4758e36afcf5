package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
)

type engagementFixture struct {
	users         *fakeUserStore
	posts         *fakePostStore
	comments      *fakeCommentStore
	notifications *fakeNotificationStore
	publisher     *recordingPublisher
	service       *EngagementService
}

func newEngagementFixture(t *testing.T) *engagementFixture {
	t.Helper()
	f := &engagementFixture{
		users:         newFakeUserStore(),
		posts:         newFakePostStore(),
		comments:      newFakeCommentStore(),
		notifications: newFakeNotificationStore(),
		publisher:     &recordingPublisher{},
	}
	f.service = NewEngagementService(
		f.posts, f.comments, f.users, f.notifications,
		&fakeTxRunner{}, f.publisher, zerolog.Nop(),
	)
	return f
}

func (f *engagementFixture) addUser(t *testing.T, uid, name string, points int) {
	t.Helper()
	err := f.users.Create(context.Background(), &models.User{
		UID:         uid,
		DisplayName: name,
		Email:       uid + "@example.com",
		Points:      points,
	})
	require.NoError(t, err)
}

func (f *engagementFixture) addPost(t *testing.T, id, authorUID string) {
	t.Helper()
	err := f.posts.Create(context.Background(), &models.Post{
		ID:        id,
		Title:     "Mẹo dậy sớm",
		Content:   "Để chuông xa giường.",
		Category:  "Mẹo vặt",
		AuthorUID: authorUID,
		LikedBy:   []string{},
	})
	require.NoError(t, err)
}

func TestLikePostAwardsPointAndNotifies(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 10)
	f.addUser(t, "liker", "Bảo Trân", 0)
	f.addPost(t, "p1", "author")

	resp, err := f.service.LikePost(context.Background(), "p1", "liker")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Likes)
	assert.True(t, resp.Liked)
	assert.Contains(t, resp.LikedBy, "liker")

	// The point goes to the liker. The author only gets the notification.
	liker, err := f.users.GetByUID(context.Background(), "liker")
	require.NoError(t, err)
	assert.Equal(t, 1, liker.Points)

	author, err := f.users.GetByUID(context.Background(), "author")
	require.NoError(t, err)
	assert.Equal(t, 10, author.Points)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, "author", n.ToUID)
	assert.Equal(t, "liker", n.FromUID)
	assert.Equal(t, models.NotificationLike, n.Type)
	assert.Equal(t, "p1", n.PostID)
}

func TestUnlikeKeepsLikerPoint(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addUser(t, "liker", "Bảo Trân", 0)
	f.addPost(t, "p1", "author")

	_, err := f.service.LikePost(context.Background(), "p1", "liker")
	require.NoError(t, err)

	resp, err := f.service.UnlikePost(context.Background(), "p1", "liker")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Likes)
	assert.False(t, resp.Liked)

	// The like is gone but the awarded point stays.
	liker, err := f.users.GetByUID(context.Background(), "liker")
	require.NoError(t, err)
	assert.Equal(t, 1, liker.Points)
}

func TestLikePostTwiceConflicts(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addUser(t, "liker", "Bảo Trân", 0)
	f.addPost(t, "p1", "author")

	_, err := f.service.LikePost(context.Background(), "p1", "liker")
	require.NoError(t, err)

	_, err = f.service.LikePost(context.Background(), "p1", "liker")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)

	liker, err := f.users.GetByUID(context.Background(), "liker")
	require.NoError(t, err)
	assert.Equal(t, 1, liker.Points)
}

func TestUnlikeWithoutLikeConflicts(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addPost(t, "p1", "author")

	_, err := f.service.UnlikePost(context.Background(), "p1", "someone")
	assert.ErrorIs(t, err, apperrors.ErrNotLiked)
}

func TestLikeUnknownPost(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "liker", "Bảo Trân", 0)

	_, err := f.service.LikePost(context.Background(), "missing", "liker")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestLikeSyntheticAuthorSkipsNotification(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "liker", "Bảo Trân", 0)
	f.addPost(t, "p1", "ai-1700000000000")

	resp, err := f.service.LikePost(context.Background(), "p1", "liker")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Likes)
	assert.Empty(t, f.notifications.notifications)

	// A synthetic author changes nothing about the liker's reward.
	liker, err := f.users.GetByUID(context.Background(), "liker")
	require.NoError(t, err)
	assert.Equal(t, 1, liker.Points)
}

func TestSyntheticLikerEarnsNoPoint(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 10)
	f.addUser(t, "ai-commenter-abc123", "Thành viên AI", 0)
	f.addPost(t, "p1", "author")

	resp, err := f.service.LikePost(context.Background(), "p1", "ai-commenter-abc123")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Likes)

	liker, err := f.users.GetByUID(context.Background(), "ai-commenter-abc123")
	require.NoError(t, err)
	assert.Equal(t, 0, liker.Points)

	author, err := f.users.GetByUID(context.Background(), "author")
	require.NoError(t, err)
	assert.Equal(t, 10, author.Points)
}

func TestSelfLikeSkipsNotification(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addPost(t, "p1", "author")

	_, err := f.service.LikePost(context.Background(), "p1", "author")
	require.NoError(t, err)
	assert.Empty(t, f.notifications.notifications)

	// Self-likes still earn the point.
	author, err := f.users.GetByUID(context.Background(), "author")
	require.NoError(t, err)
	assert.Equal(t, 1, author.Points)
}

func TestAddCommentAwardsPointsAndNotifies(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addUser(t, "commenter", "Bảo Trân", 0)
	f.addPost(t, "p1", "author")

	comment, err := f.service.AddComment(context.Background(), "p1", "commenter", &dto.AddCommentRequest{
		Content: "Hay quá, mình sẽ thử!",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bảo Trân", comment.Author)
	assert.Equal(t, "commenter", comment.AuthorUID)

	commenter, err := f.users.GetByUID(context.Background(), "commenter")
	require.NoError(t, err)
	assert.Equal(t, PointsPerComment, commenter.Points)

	post, err := f.posts.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, post.Comments)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, models.NotificationComment, n.Type)
	assert.Equal(t, "author", n.ToUID)
	require.NotNil(t, n.Content)
	assert.Equal(t, "Hay quá, mình sẽ thử!", *n.Content)
}

func TestAddCommentReplyNotifiesParentAuthor(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addUser(t, "first", "Bảo Trân", 0)
	f.addUser(t, "second", "Khánh Duy", 0)
	f.addPost(t, "p1", "author")
	require.NoError(t, f.comments.Create(context.Background(), &models.Comment{
		ID: "c1", PostID: "p1", AuthorUID: "first", Content: "Mình cũng nghĩ vậy",
	}))

	parentID := "c1"
	replyToUID := "first"
	replyToName := "Bảo Trân"
	_, err := f.service.AddComment(context.Background(), "p1", "second", &dto.AddCommentRequest{
		Content:     "Đồng ý với bạn luôn",
		ParentID:    &parentID,
		ReplyToUid:  &replyToUID,
		ReplyToName: &replyToName,
	})
	require.NoError(t, err)

	// The reply notifies the answered commenter, not the post author.
	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, models.NotificationReply, n.Type)
	assert.Equal(t, "first", n.ToUID)
}

func TestAddCommentReplyRequiresExistingParent(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addUser(t, "second", "Khánh Duy", 0)
	f.addPost(t, "p1", "author")
	f.addPost(t, "p2", "author")
	require.NoError(t, f.comments.Create(context.Background(), &models.Comment{
		ID: "other", PostID: "p2", AuthorUID: "author", Content: "Bình luận bài khác",
	}))

	replyToUID := "author"
	for _, parentID := range []string{"missing", "other"} {
		_, err := f.service.AddComment(context.Background(), "p1", "second", &dto.AddCommentRequest{
			Content:    "Trả lời ai đây",
			ParentID:   &parentID,
			ReplyToUid: &replyToUID,
		})
		assert.ErrorIs(t, err, apperrors.ErrCommentNotFound, "parent %q", parentID)
	}
	assert.Empty(t, f.notifications.notifications)
}

func TestAddCommentOwnPostSkipsNotification(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addPost(t, "p1", "author")

	_, err := f.service.AddComment(context.Background(), "p1", "author", &dto.AddCommentRequest{
		Content: "Bổ sung thêm một ý nhỏ",
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifications.notifications)

	author, err := f.users.GetByUID(context.Background(), "author")
	require.NoError(t, err)
	assert.Equal(t, PointsPerComment, author.Points)
}

func TestCommentExcerptTruncatesRunes(t *testing.T) {
	long := strings.Repeat("ắ", notificationExcerptLen+10)
	excerpt := commentExcerpt(long)

	assert.Equal(t, notificationExcerptLen+3, len([]rune(excerpt)))
	assert.True(t, strings.HasSuffix(excerpt, "..."))
	assert.Equal(t, strings.Repeat("ắ", notificationExcerptLen), strings.TrimSuffix(excerpt, "..."))

	short := "Ngắn thôi"
	assert.Equal(t, short, commentExcerpt(short))
}

func TestLikePublishesCounterUpdates(t *testing.T) {
	f := newEngagementFixture(t)
	f.addUser(t, "author", "Minh Anh", 0)
	f.addUser(t, "liker", "Bảo Trân", 0)
	f.addPost(t, "p1", "author")

	_, err := f.service.LikePost(context.Background(), "p1", "liker")
	require.NoError(t, err)

	topics := f.publisher.topics()
	assert.Contains(t, topics, "post:p1")
	assert.Contains(t, topics, "feed")
	assert.Contains(t, topics, "user:liker")
	assert.Contains(t, topics, "leaderboard")
}

func TestListUserCommentsNewestFirst(t *testing.T) {
	f := newEngagementFixture(t)
	base := time.Now().Add(-time.Hour)
	for i, c := range []*models.Comment{
		{ID: "c1", PostID: "p1", AuthorUID: "u1", Content: "Hay quá"},
		{ID: "c2", PostID: "p2", AuthorUID: "u1", Content: "Đồng ý"},
		{ID: "c3", PostID: "p1", AuthorUID: "u2", Content: "Cảm ơn bạn"},
	} {
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, f.comments.Create(context.Background(), c))
	}

	comments, err := f.service.ListUserComments(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c2", comments[0].ID)
	assert.Equal(t, "c1", comments[1].ID)
}

func TestMarkNotificationRead(t *testing.T) {
	f := newEngagementFixture(t)
	f.notifications.notifications = append(f.notifications.notifications, &models.Notification{
		ID:    "n1",
		ToUID: "reader",
	})

	require.NoError(t, f.service.MarkNotificationRead(context.Background(), "n1", "reader"))
	assert.True(t, f.notifications.read["n1"])

	// Another user's id silently does nothing.
	require.NoError(t, f.service.MarkNotificationRead(context.Background(), "n1", "other"))
}
