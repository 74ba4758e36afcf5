package dto

import "github.com/conghanh/luanho/internal/app/models"

// CreatePostRequest is the payload for publishing a post.
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,min=3,max=300"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required,max=255"`
}

// FeedFilterRequest carries feed query parameters. Search is a
// case-insensitive substring match over title, content and author name.
type FeedFilterRequest struct {
	Sort     string `form:"sort,default=latest" binding:"omitempty,oneof=latest trending"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// PostResponse decorates a post with the caller's like state.
type PostResponse struct {
	models.Post
	Liked bool `json:"liked"`
}

// NewPostResponse builds a PostResponse for the given viewer uid.
func NewPostResponse(post models.Post, viewerUID string) PostResponse {
	return PostResponse{
		Post:  post,
		Liked: viewerUID != "" && post.LikedByUser(viewerUID),
	}
}

// LikeResponse reports the post counters after a like or unlike.
type LikeResponse struct {
	PostID  string   `json:"postId"`
	Likes   int      `json:"likes"`
	LikedBy []string `json:"likedBy"`
	Liked   bool     `json:"liked"`
}
