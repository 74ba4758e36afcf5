// Package genai is a thin client for the Google Generative Language API.
// It covers the three authoring assists (title suggestion, drafting,
// refinement) and the structured post+seed-comment generation used by the
// admin lab. Malformed or failed responses surface as errors; callers decide
// the fallback, they never propagate a parse failure to the client.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/pkg/apperrors"
)

// editorialDirection frames every prompt with the community's voice.
const editorialDirection = "Lửa Nhỏ - Cộng đồng chia sẻ mẹo vặt, cảm hứng học tập và kỹ năng sống cho giới trẻ Việt Nam. Giọng văn gần gũi, Gen Z, tích cực, không dạy đời."

// FallbackTitle is substituted when the title suggestion call fails.
const FallbackTitle = "Mẹo nhỏ cho ngày mới"

// SeedComment is one synthetic comment attached to a generated post.
type SeedComment struct {
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
}

// Result is the structured output of a lab generation call.
type Result struct {
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	AuthorName   string        `json:"authorName"`
	FakeComments []SeedComment `json:"fakeComments"`
}

// Config holds client settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls the generateContent endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	logger     zerolog.Logger
}

// NewClient creates a generative service client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     logger.With().Str("component", "genai").Logger(),
	}
}

// Available reports whether the client is configured with an API key.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// request/response wire shapes for generateContent.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// resultSchema constrains the structured lab generation output.
var resultSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"title": {"type": "STRING"},
		"content": {"type": "STRING"},
		"authorName": {"type": "STRING"},
		"fakeComments": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"properties": {
					"authorName": {"type": "STRING"},
					"content": {"type": "STRING"}
				},
				"required": ["authorName", "content"]
			}
		}
	},
	"required": ["title", "content", "authorName", "fakeComments"]
}`)

// GeneratePost asks for a complete post draft with seeded comments.
func (c *Client) GeneratePost(ctx context.Context, topic, category string) (*Result, error) {
	if category == "" {
		category = "Chung"
	}

	prompt := fmt.Sprintf(`Hãy đóng vai một chuyên gia sáng tạo nội dung cho %s.
Viết một bài đăng cho chuyên mục "%s" về chủ đề cụ thể: "%s".

YÊU CẦU QUAN TRỌNG:
- Tên tác giả (authorName) là một tên người Việt Nam ngẫu nhiên, hiện đại (VD: Minh Anh, Hoàng Nam, Linh Chi...).
- Nội dung bài viết phải mang tính chia sẻ, hữu ích, có tâm.
- Các bình luận seeding (fakeComments) phải thể hiện sự tương tác tích cực, đặt câu hỏi hoặc cảm ơn theo đúng văn hóa mạng xã hội giới trẻ.`,
		editorialDirection, category, topic)

	text, err := c.generate(ctx, prompt, &generationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   resultSchema,
	})
	if err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		c.logger.Warn().Err(err).Msg("Generative service returned malformed JSON")
		return nil, fmt.Errorf("%w: malformed structured response", apperrors.ErrAIUnavailable)
	}
	if result.FakeComments == nil {
		result.FakeComments = []SeedComment{}
	}

	return &result, nil
}

// SuggestTitle asks for a single catchy title for a category.
func (c *Client) SuggestTitle(ctx context.Context, category string) (string, error) {
	prompt := fmt.Sprintf(`Gợi ý 1 tiêu đề bài viết ngắn gọn, cực cuốn cho chủ đề "%s" trong cộng đồng %s. Chỉ trả về duy nhất chuỗi tiêu đề, không thêm gì khác.`,
		category, editorialDirection)

	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}

	// Models occasionally decorate the title with quotes
	return strings.Trim(strings.TrimSpace(text), `'"`), nil
}

// DraftContent asks for a full article body for a chosen title.
func (c *Client) DraftContent(ctx context.Context, title, category string) (string, error) {
	if category == "" {
		category = "Chung"
	}

	prompt := fmt.Sprintf(`Viết nội dung chi tiết cho bài đăng có tiêu đề "%s" thuộc chuyên mục "%s" trong cộng đồng %s. Nội dung chia sẻ chân thành, hữu ích, khoảng 150-250 từ, có emoji phù hợp. Chỉ trả về nội dung bài viết.`,
		title, category, editorialDirection)

	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// RefineContent asks for a stylistic rewrite of the given content.
func (c *Client) RefineContent(ctx context.Context, current string) (string, error) {
	prompt := fmt.Sprintf(`Hãy giúp tôi tinh chỉnh đoạn văn sau theo phong cách %s. Hãy làm nó cuốn hút hơn, thêm emoji phù hợp và sửa lỗi diễn đạt: "%s". Chỉ trả về nội dung đã sửa.`,
		editorialDirection, current)

	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// generate issues one generateContent call and returns the first candidate's
// text part.
func (c *Client) generate(ctx context.Context, prompt string, cfg *generationConfig) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("%w: no API key configured", apperrors.ErrAIUnavailable)
	}

	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Generative service request failed")
		return "", fmt.Errorf("%w: %v", apperrors.ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", apperrors.ErrAIUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("Generative service returned non-OK status")
		return "", fmt.Errorf("%w: status %d", apperrors.ErrAIUnavailable, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("%w: malformed response envelope", apperrors.ErrAIUnavailable)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrAIUnavailable)
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
