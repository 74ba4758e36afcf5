package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/db"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/logger"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *db.PostgresDB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *db.PostgresDB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, post_id, author_uid, author, author_avatar, content, parent_id, reply_to_name, created_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorUID,
		&c.Author,
		&c.AuthorAvatar,
		&c.Content,
		&c.ParentID,
		&c.ReplyToName,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_uid, author, author_avatar, content, parent_id, reply_to_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		comment.ID,
		comment.PostID,
		comment.AuthorUID,
		comment.Author,
		comment.AuthorAvatar,
		comment.Content,
		comment.ParentID,
		comment.ReplyToName,
	).Scan(&comment.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("postID", comment.PostID).Msg("Error executing create comment query")
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.Querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		logger.Error().Err(err).Str("commentID", id).Msg("Error scanning comment row")
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}

	return comment, nil
}

// ListByPost retrieves a post's comments in creation order
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Querier(ctx).Query(ctx, query, postID)
	if err != nil {
		logger.Error().Err(err).Str("postID", postID).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error retrieving comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// ListByAuthor retrieves a user's comments, newest first
func (r *CommentRepository) ListByAuthor(ctx context.Context, authorUID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE author_uid = $1 ORDER BY created_at DESC`

	rows, err := r.db.Querier(ctx).Query(ctx, query, authorUID)
	if err != nil {
		logger.Error().Err(err).Str("authorUID", authorUID).Msg("Error executing list comments by author query")
		return nil, fmt.Errorf("error retrieving comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}
