package dto

import "github.com/conghanh/luanho/internal/pkg/genai"

// SuggestTitleRequest asks the generative service for a title idea.
type SuggestTitleRequest struct {
	Category string `json:"category" binding:"required"`
}

// SuggestTitleResponse carries the suggested title.
type SuggestTitleResponse struct {
	Title string `json:"title"`
}

// DraftContentRequest asks for a full draft for a chosen title.
type DraftContentRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category"`
}

// DraftContentResponse carries the drafted content.
type DraftContentResponse struct {
	Content string `json:"content"`
}

// RefineContentRequest asks for a stylistic rewrite of existing content.
type RefineContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// RefineContentResponse carries the refined content.
type RefineContentResponse struct {
	Content string `json:"content"`
}

// LabGenerateRequest asks the lab for a complete synthetic post draft.
type LabGenerateRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Category string `json:"category"`
}

// LabPublishRequest publishes a generated draft as an ordinary post plus
// seeded comments, all attributed to synthetic identities.
type LabPublishRequest struct {
	Title        string              `json:"title" binding:"required"`
	Content      string              `json:"content" binding:"required"`
	Category     string              `json:"category" binding:"required"`
	AuthorName   string              `json:"authorName" binding:"required"`
	FakeComments []genai.SeedComment `json:"fakeComments"`
}

// LabPublishResponse reports the published post id and how many seed comments
// were written.
type LabPublishResponse struct {
	PostID       string `json:"postId"`
	SeedComments int    `json:"seedComments"`
}
