package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailConflict    = errors.New("user email conflict")
	ErrUserUsernameConflict = errors.New("user username conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int) error
	UpdateProfileImage(ctx context.Context, id int, imageURL string) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `
	id, username, email, password_hash, full_name, mobile, date_of_birth, state,
	profile_image, total_points, matches_played, contests_won,
	is_verified, is_active, created_at, updated_at, last_login
`

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, full_name, mobile, date_of_birth, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, total_points, matches_played, contests_won, is_verified, is_active, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Mobile,
		user.DateOfBirth,
		user.State,
	).Scan(
		&user.ID,
		&user.TotalPoints,
		&user.MatchesPlayed,
		&user.ContestsWon,
		&user.IsVerified,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_email_key":
				return ErrUserEmailConflict
			case "users_username_key":
				return ErrUserUsernameConflict
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

var (
	userByIDQuery          = `SELECT` + userColumns + `FROM users WHERE id = $1`
	activeUserByEmailQuery = `SELECT` + userColumns + `FROM users WHERE email = $1 AND is_active = TRUE`
)

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.scanUser(ctx, userByIDQuery, id)
}

func (r *postgresUserRepository) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(ctx, activeUserByEmailQuery, email)
}

func (r *postgresUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, id int) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateProfileImage(ctx context.Context, id int, imageURL string) error {
	query := `UPDATE users SET profile_image = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, imageURL, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Mobile,
		&user.DateOfBirth,
		&user.State,
		&user.ProfileImage,
		&user.TotalPoints,
		&user.MatchesPlayed,
		&user.ContestsWon,
		&user.IsVerified,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
