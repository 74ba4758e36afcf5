package repositories

import (
	"context"
	"fmt"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/db"
	"github.com/conghanh/luanho/internal/pkg/logger"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *db.PostgresDB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *db.PostgresDB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, to_uid, from_uid, from_name, from_avatar, type, post_id, read, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		n.ID,
		n.ToUID,
		n.FromUID,
		n.FromName,
		n.FromAvatar,
		n.Type,
		n.PostID,
		n.Read,
		n.Content,
	).Scan(&n.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("toUID", n.ToUID).Msg("Error executing create notification query")
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// MarkRead flags a notification as read. Marking an already-read or unknown
// notification is a no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, toUID string) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND to_uid = $2`, id, toUID)
	if err != nil {
		logger.Error().Err(err).Str("notificationID", id).Msg("Error executing mark read query")
		return fmt.Errorf("error marking notification read: %w", err)
	}
	return nil
}
