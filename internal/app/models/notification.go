package models

import "time"

// NotificationType classifies why a notification was created.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationReply   NotificationType = "reply"
	NotificationSystem  NotificationType = "system"
)

// Notification is written as a side effect of likes, comments and replies.
// There is no read/display surface; only the write path and a mark-read
// operation exist.
type Notification struct {
	ID         string           `json:"id"`
	ToUID      string           `json:"toUid"`
	FromUID    string           `json:"fromUid"`
	FromName   string           `json:"fromName"`
	FromAvatar string           `json:"fromAvatar"`
	Type       NotificationType `json:"type"`
	PostID     string           `json:"postId"`
	Read       bool             `json:"read"`
	Content    *string          `json:"content,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}
