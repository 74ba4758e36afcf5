package models

import "time"

// Comment belongs to a post. ParentID and ReplyToName carry a shallow
// one-level reply hint; full threads are not modeled.
type Comment struct {
	ID           string    `json:"id"`
	PostID       string    `json:"postId"`
	AuthorUID    string    `json:"authorUid"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"authorAvatar"`
	Content      string    `json:"content"`
	ParentID     *string   `json:"parentId,omitempty"`
	ReplyToName  *string   `json:"replyToName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
