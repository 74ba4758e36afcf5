package dto

// AddCommentRequest appends a comment to a post. ParentID, ReplyToUid and
// ReplyToName are set together when answering another comment.
type AddCommentRequest struct {
	Content     string  `json:"content" binding:"required"`
	ParentID    *string `json:"parentId"`
	ReplyToUid  *string `json:"replyToUid"`
	ReplyToName *string `json:"replyToName"`
}
