package services

import (
	"context"
	"time"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/repositories"
)

// Services defined in this package:
// - AuthService: registration, sign-in, OAuth provisioning and token rotation
// - PostService: publishing, the feed and post deletion
// - EngagementService: likes, comments, notifications and point awards
// - ProfileService: profiles, rank computation and profile edits
// - LeaderboardService: the points standings
// - CategoryService: the effective category list and explicit registration
// - AILabService: assisted drafting and synthetic post publishing

// The store interfaces below are the slices of the repository layer each
// service needs. The pgx repositories satisfy them; tests substitute
// in-memory fakes.

// UserStore persists users and point totals.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByProviderIdentity(ctx context.Context, provider models.AuthProvider, providerID string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid, displayName string) error
	UpdateAvatar(ctx context.Context, uid, photoURL string) error
	AddPoints(ctx context.Context, uid string, delta int) (int, error)
	CountWithMorePoints(ctx context.Context, points int) (int, error)
	TopByPoints(ctx context.Context, limit int) ([]*models.User, error)
}

// PostStore persists posts and their counters.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, filter repositories.PostFilter) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID, uid string) (int, error)
	RemoveLike(ctx context.Context, postID, uid string) (int, error)
	IncrementComments(ctx context.Context, postID string) (int, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

// CommentStore persists comments.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	ListByAuthor(ctx context.Context, authorUID string) ([]*models.Comment, error)
}

// NotificationStore persists notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, id, toUID string) error
}

// CategoryStore persists registered categories.
type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	ListNames(ctx context.Context) ([]string, error)
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token, userUID string, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (string, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userUID string) error
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
