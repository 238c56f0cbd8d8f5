package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/Surabhi11/fantasy-cricket/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost     = 12
	sessionTTL     = 24 * time.Hour
	minAge         = 18
	minPasswordLen = 8
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
	UserBySession(ctx context.Context, token string) (*models.User, error)
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	Mobile      string `json:"mobile"`
	DateOfBirth string `json:"dateOfBirth"`
	State       string `json:"state"`
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	logger      *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" ||
		input.FullName == "" || input.DateOfBirth == "" || input.State == "" {
		return nil, ErrMissingFields
	}
	if !validEmail(input.Email) {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidationFailed, minPasswordLen)
	}

	birthDate, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date of birth", ErrValidationFailed)
	}
	if ageAt(birthDate, time.Now()) < minAge {
		return nil, ErrUnderage
	}
	if restrictedStates[input.State] {
		return nil, ErrRestrictedState
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		DateOfBirth:  birthDate,
		State:        input.State,
		IsActive:     true,
	}
	if input.Mobile != "" {
		user.Mobile = &input.Mobile
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraints back up the pre-check under concurrency.
		if errors.Is(err, repositories.ErrUserEmailConflict) ||
			errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and mints a server-side session. Unknown
// emails and wrong passwords produce the same error so the response does
// not reveal which accounts exist.
func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, *models.Session, error) {
	if input.Email == "" || input.Password == "" {
		return nil, nil, ErrMissingFields
	}

	user, err := s.userRepo.GetActiveByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record last login", slog.Int("user_id", user.ID), slog.Any("error", err))
	}

	session := &models.Session{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if input.IPAddress != "" {
		session.IPAddress = &input.IPAddress
	}
	if input.UserAgent != "" {
		session.UserAgent = &input.UserAgent
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	user.PasswordHash = ""
	return user, session, nil
}

// Logout destroys the session row. A token that is already gone is not an
// error, logout must be idempotent.
func (s *authService) Logout(ctx context.Context, token string) error {
	err := s.sessionRepo.DeleteByToken(ctx, token)
	if err != nil && !errors.Is(err, repositories.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) UserBySession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Expired(time.Now()) {
		if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil && !errors.Is(err, repositories.ErrSessionNotFound) {
			s.logger.Warn("failed to delete expired session", slog.Any("error", err))
		}
		return nil, ErrNotAuthenticated
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}
