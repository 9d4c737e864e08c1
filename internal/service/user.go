package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/galaxyhq/galaxy/internal/storage"
	"github.com/galaxyhq/galaxy/internal/validation"
)

type UserService struct {
	repo      repository.UserRepository
	storage   storage.Storage
	rateLimit *RateLimitService
}

func NewUserService(repo repository.UserRepository, storage storage.Storage, rateLimit *RateLimitService) *UserService {
	return &UserService{
		repo:      repo,
		storage:   storage,
		rateLimit: rateLimit,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	s.fillAvatarURL(user)
	return user, nil
}

func (s *UserService) ByUsername(username string) (*model.User, error) {
	user, err := s.repo.ByUsername(username)
	if err != nil {
		return nil, err
	}

	s.fillAvatarURL(user)
	return user, nil
}

// UploadAvatar validates and stores a new avatar image, replacing the
// previous one.
func (s *UserService) UploadAvatar(userID string, header *multipart.FileHeader) (string, error) {
	err := s.rateLimit.Require(UserKey(userID), "avatar:upload", 10, time.Minute)
	if err != nil {
		return "", err
	}

	err = validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidUpload, err)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := fmt.Sprintf("avatars/%s%s", userID, ext)

	err = s.storage.Save(path, file)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	err = s.repo.UpdateAvatar(userID, &path)
	if err != nil {
		return "", err
	}

	return s.storage.PublicURL(path), nil
}

func (s *UserService) fillAvatarURL(user *model.User) {
	if user.AvatarPath != nil && *user.AvatarPath != "" {
		user.AvatarURL = s.storage.PublicURL(*user.AvatarPath)
	}
}
