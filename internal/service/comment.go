package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/moderation"
	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/google/uuid"
)

// ErrCommentRejected wraps the moderation outcome when a comment body fails
// the heuristic filter.
var ErrCommentRejected = errors.New("comment rejected by moderation")

const commentListLimit = 200

type CommentService struct {
	repo         repository.CommentRepository
	photoService *PhotoService
	filter       *moderation.Filter
	rateLimit    *RateLimitService
}

func NewCommentService(
	repo repository.CommentRepository,
	photoService *PhotoService,
	filter *moderation.Filter,
	rateLimit *RateLimitService,
) *CommentService {
	return &CommentService{
		repo:         repo,
		photoService: photoService,
		filter:       filter,
		rateLimit:    rateLimit,
	}
}

// Add persists a comment after the full gate pipeline: rate limit, visibility,
// moderation. Nothing is written if any earlier step fails.
func (s *CommentService) Add(user *model.User, photoID, body string) (*model.Comment, error) {
	err := s.rateLimit.Require(UserKey(user.ID), "comment:create", 10, time.Minute)
	if err != nil {
		return nil, err
	}

	err = s.photoService.AssertViewable(photoID, user.ID)
	if err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	err = s.filter.Moderate(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCommentRejected, err)
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		PhotoID:   photoID,
		AuthorID:  user.ID,
		Body:      body,
		CreatedAt: time.Now(),

		AuthorUsername: user.Username,
		AuthorName:     user.Name,
		AuthorAvatar:   user.AvatarPath,
	}

	err = s.repo.Create(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListByPhoto returns the visible comments on a photo, oldest first. Comments
// hidden by moderation are excluded.
func (s *CommentService) ListByPhoto(photoID, viewerID string) ([]*model.Comment, error) {
	err := s.photoService.AssertViewable(photoID, viewerID)
	if err != nil {
		return nil, err
	}

	return s.repo.VisibleByPhoto(photoID, commentListLimit)
}

// Hide marks a comment hidden. Called from the moderation webhook, not by end
// users.
func (s *CommentService) Hide(commentID string) error {
	return s.repo.Hide(commentID, time.Now())
}
