package repositories

import (
	"github.com/conghanh/luanho/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	PostRepository         *PostRepository
	CommentRepository      *CommentRepository
	NotificationRepository *NotificationRepository
	CategoryRepository     *CategoryRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		PostRepository:         NewPostRepository(db),
		CommentRepository:      NewCommentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		CategoryRepository:     NewCategoryRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
