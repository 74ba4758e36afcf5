package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/db"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/logger"
)

// PostFilter narrows and orders the feed query.
type PostFilter struct {
	Sort     models.FeedSort
	Category string
	Search   string
	Limit    int
	Offset   int
}

// PostRepository handles database operations for posts
type PostRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *db.PostgresDB) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const postColumns = `id, title, content, category, author, author_avatar, author_uid, likes, comments, liked_by, created_at`

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.Category,
		&p.Author,
		&p.AuthorAvatar,
		&p.AuthorUID,
		&p.Likes,
		&p.Comments,
		&p.LikedBy,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	return &p, nil
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, title, content, category, author, author_avatar, author_uid, likes, comments, liked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Category,
		post.Author,
		post.AuthorAvatar,
		post.AuthorUID,
		post.Likes,
		post.Comments,
		post.LikedBy,
	).Scan(&post.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("postID", post.ID).Msg("Error executing create post query")
		return fmt.Errorf("error creating post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.Querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Str("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	return post, nil
}

// List retrieves posts matching the filter
func (r *PostRepository) List(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	builder := r.sb.Select(postColumns).From("posts")

	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
			squirrel.ILike{"author": pattern},
		})
	}

	switch filter.Sort {
	case models.SortTrending:
		builder = builder.OrderBy("likes DESC", "created_at DESC")
	default:
		builder = builder.OrderBy("created_at DESC")
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list posts SQL")
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	return r.queryPosts(ctx, query, args...)
}

// ListByAuthor retrieves all posts by an author, newest first
func (r *PostRepository) ListByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_uid = $1 ORDER BY created_at DESC`
	return r.queryPosts(ctx, query, authorUID)
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list posts query")
		return nil, fmt.Errorf("error retrieving posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// Delete removes a post. Its comments are intentionally left in place.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("postID", id).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// AddLike records uid in the membership array and bumps the counter in one
// statement, so double likes lose the race at the database.
func (r *PostRepository) AddLike(ctx context.Context, postID, uid string) (int, error) {
	query := `
		UPDATE posts
		SET likes = likes + 1, liked_by = array_append(liked_by, $1)
		WHERE id = $2 AND NOT ($1 = ANY(liked_by))
		RETURNING likes
	`

	var likes int
	err := r.db.Querier(ctx).QueryRow(ctx, query, uid, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.likeConflict(ctx, postID, apperrors.ErrAlreadyLiked)
		}
		logger.Error().Err(err).Str("postID", postID).Str("uid", uid).Msg("Error executing add like query")
		return 0, fmt.Errorf("error liking post: %w", err)
	}

	return likes, nil
}

// RemoveLike removes uid from the membership array and decrements the
// counter. Nobody's points are touched on unlike.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, uid string) (int, error) {
	query := `
		UPDATE posts
		SET likes = likes - 1, liked_by = array_remove(liked_by, $1)
		WHERE id = $2 AND $1 = ANY(liked_by)
		RETURNING likes
	`

	var likes int
	err := r.db.Querier(ctx).QueryRow(ctx, query, uid, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.likeConflict(ctx, postID, apperrors.ErrNotLiked)
		}
		logger.Error().Err(err).Str("postID", postID).Str("uid", uid).Msg("Error executing remove like query")
		return 0, fmt.Errorf("error unliking post: %w", err)
	}

	return likes, nil
}

// likeConflict distinguishes a missing post from a membership conflict after
// a guarded like update matched no row.
func (r *PostRepository) likeConflict(ctx context.Context, postID string, membershipErr error) error {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking post existence: %w", err)
	}
	if !exists {
		return apperrors.ErrPostNotFound
	}
	return membershipErr
}

// IncrementComments bumps the cached comment counter and returns the new value
func (r *PostRepository) IncrementComments(ctx context.Context, postID string) (int, error) {
	var comments int
	err := r.db.Querier(ctx).QueryRow(ctx,
		`UPDATE posts SET comments = comments + 1 WHERE id = $1 RETURNING comments`, postID).Scan(&comments)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Str("postID", postID).Msg("Error executing increment comments query")
		return 0, fmt.Errorf("error updating comment count: %w", err)
	}
	return comments, nil
}

// DistinctCategories lists every category value observed on posts
func (r *PostRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `SELECT DISTINCT category FROM posts`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing distinct categories query")
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}
