package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/Surabhi11/fantasy-cricket/repositories"
	"github.com/Surabhi11/fantasy-cricket/storage"
)

const MaxAvatarSize = 5 << 20 // 5 MiB

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UploadAvatar(ctx context.Context, userID int, contentType string, body io.Reader) (string, error)
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

// NewUserService accepts a nil uploader; avatar uploads then fail with
// ErrUploadsDisabled instead of panicking.
func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{userRepo: userRepo, uploader: uploader}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// UploadAvatar stores the image under a per-user key and records the public
// URL on the profile. The key embeds a timestamp so a fresh upload never
// serves a stale cached object.
func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, body io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsDisabled
	}

	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", ErrAvatarUnsupported
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	key := fmt.Sprintf("avatars/%d/%d%s", userID, time.Now().UnixNano(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, io.LimitReader(body, MaxAvatarSize))
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateProfileImage(ctx, userID, result.Location); err != nil {
		return "", fmt.Errorf("failed to save avatar URL: %w", err)
	}
	return result.Location, nil
}
