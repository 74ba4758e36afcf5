package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/db"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
	"github.com/conghanh/luanho/internal/pkg/dberrors"
	"github.com/conghanh/luanho/internal/pkg/logger"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *db.PostgresDB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *db.PostgresDB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `uid, display_name, photo_url, points, email, password_hash, provider, provider_id, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var passwordHash *string
	err := row.Scan(
		&u.UID,
		&u.DisplayName,
		&u.PhotoURL,
		&u.Points,
		&u.Email,
		&passwordHash,
		&u.Provider,
		&u.ProviderID,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	return &u, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (uid, display_name, photo_url, points, email, password_hash, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
		RETURNING created_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		user.UID,
		user.DisplayName,
		user.PhotoURL,
		user.Points,
		user.Email,
		user.PasswordHash,
		user.Provider,
		user.ProviderID,
	).Scan(&user.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByUID retrieves a user by uid
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`

	user, err := scanUser(r.db.Querier(ctx).QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("uid", uid).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.Querier(ctx).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByProviderIdentity retrieves the user bound to an OAuth identity
func (r *UserRepository) GetByProviderIdentity(ctx context.Context, provider models.AuthProvider, providerID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE provider = $1 AND provider_id = $2`

	user, err := scanUser(r.db.Querier(ctx).QueryRow(ctx, query, provider, providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("provider", string(provider)).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// UpdateProfile updates a user's display name
func (r *UserRepository) UpdateProfile(ctx context.Context, uid, displayName string) error {
	cmdTag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE users SET display_name = $1 WHERE uid = $2`, displayName, uid)
	if err != nil {
		logger.Error().Err(err).Str("uid", uid).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateAvatar updates a user's photo URL
func (r *UserRepository) UpdateAvatar(ctx context.Context, uid, photoURL string) error {
	cmdTag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE users SET photo_url = $1 WHERE uid = $2`, photoURL, uid)
	if err != nil {
		logger.Error().Err(err).Str("uid", uid).Msg("Error executing update avatar query")
		return fmt.Errorf("error updating avatar: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// AddPoints atomically adds delta to a user's points and returns the new
// total. Missing users are ignored so synthetic authors never fail a write.
func (r *UserRepository) AddPoints(ctx context.Context, uid string, delta int) (int, error) {
	var points int
	err := r.db.Querier(ctx).QueryRow(ctx,
		`UPDATE users SET points = points + $1 WHERE uid = $2 RETURNING points`, delta, uid).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		logger.Error().Err(err).Str("uid", uid).Msg("Error executing add points query")
		return 0, fmt.Errorf("error adding points: %w", err)
	}
	return points, nil
}

// CountWithMorePoints counts users strictly above the given point total.
// Rank is this count plus one, so equal totals share a rank.
func (r *UserRepository) CountWithMorePoints(ctx context.Context, points int) (int, error) {
	var count int
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE points > $1`, points).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing rank count query")
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// TopByPoints retrieves the highest-scoring users
func (r *UserRepository) TopByPoints(ctx context.Context, limit int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY points DESC, uid ASC LIMIT $1`

	rows, err := r.db.Querier(ctx).Query(ctx, query, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing leaderboard query")
		return nil, fmt.Errorf("error retrieving leaderboard: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning leaderboard row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}

	return users, nil
}
