package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/models/dto"
	"github.com/conghanh/luanho/internal/pkg/avatar"
	"github.com/conghanh/luanho/internal/pkg/genai"
	"github.com/conghanh/luanho/internal/pkg/realtime"
)

// Seeded like counts land in [10, 70).
const (
	seedLikesMin  = 10
	seedLikesSpan = 60
)

// AILabService handles assisted drafting and the operator's synthetic
// publishing lab
type AILabService struct {
	client       *genai.Client
	postStore    PostStore
	commentStore CommentStore
	tx           TxRunner
	publisher    realtime.Publisher
	logger       zerolog.Logger
}

// NewAILabService creates a new AILabService
func NewAILabService(
	client *genai.Client,
	postStore PostStore,
	commentStore CommentStore,
	tx TxRunner,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) *AILabService {
	return &AILabService{
		client:       client,
		postStore:    postStore,
		commentStore: commentStore,
		tx:           tx,
		publisher:    publisher,
		logger:       logger.With().Str("service", "ailab").Logger(),
	}
}

// SuggestTitle asks for a title idea, degrading to the fixed fallback when
// the generative service fails.
func (s *AILabService) SuggestTitle(ctx context.Context, category string) string {
	title, err := s.client.SuggestTitle(ctx, category)
	if err != nil || title == "" {
		s.logger.Warn().Err(err).Str("category", category).Msg("Title suggestion failed, using fallback")
		return genai.FallbackTitle
	}
	return title
}

// DraftContent asks for a full body for a chosen title.
func (s *AILabService) DraftContent(ctx context.Context, title, category string) (string, error) {
	return s.client.DraftContent(ctx, title, category)
}

// RefineContent rewrites the given content, returning it unchanged when the
// generative service fails.
func (s *AILabService) RefineContent(ctx context.Context, current string) string {
	refined, err := s.client.RefineContent(ctx, current)
	if err != nil || refined == "" {
		s.logger.Warn().Err(err).Msg("Refine failed, returning input unchanged")
		return current
	}
	return refined
}

// Generate produces a complete draft with seed comments. Failures degrade to
// an empty draft the operator can fill in by hand.
func (s *AILabService) Generate(ctx context.Context, topic, category string) *genai.Result {
	result, err := s.client.GeneratePost(ctx, topic, category)
	if err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Msg("Lab generation failed, returning empty draft")
		return &genai.Result{FakeComments: []genai.SeedComment{}}
	}
	return result
}

// Publish turns a lab draft into an ordinary post with seeded engagement.
// The author is a minted ai- identity with no users row, the like count is
// random and each seed comment gets its own synthetic commenter. No points
// are awarded anywhere.
func (s *AILabService) Publish(ctx context.Context, req *dto.LabPublishRequest) (*dto.LabPublishResponse, error) {
	authorUID := fmt.Sprintf("%s%d", models.SyntheticUIDPrefix, time.Now().UnixMilli())

	post := &models.Post{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		Category:     strings.TrimSpace(req.Category),
		Author:       req.AuthorName,
		AuthorAvatar: avatar.PlaceholderURL(req.AuthorName),
		AuthorUID:    authorUID,
		Likes:        seedLikesMin + rand.Intn(seedLikesSpan),
		Comments:     len(req.FakeComments),
		LikedBy:      []string{},
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.postStore.Create(ctx, post); err != nil {
			return err
		}
		for _, seed := range req.FakeComments {
			comment := &models.Comment{
				ID:           uuid.New().String(),
				PostID:       post.ID,
				AuthorUID:    models.SyntheticUIDPrefix + "commenter-" + uuid.New().String()[:8],
				Author:       seed.AuthorName,
				AuthorAvatar: avatar.PlaceholderURL(seed.AuthorName),
				Content:      seed.Content,
			}
			if err := s.commentStore.Create(ctx, comment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("postID", post.ID).
		Str("authorUID", authorUID).
		Int("seedComments", len(req.FakeComments)).
		Msg("Synthetic post published")

	s.publisher.Publish(realtime.TopicFeed, realtime.EventPostCreated, post)

	return &dto.LabPublishResponse{
		PostID:       post.ID,
		SeedComments: len(req.FakeComments),
	}, nil
}
