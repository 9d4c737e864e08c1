package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/repository"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

// SocialService owns the idempotent toggle edges: like, bookmark, follow.
// Each toggle runs the same pipeline: rate limit the actor, authorize the
// target, then flip the edge. Existence of the edge row is the boolean state.
type SocialService struct {
	likeRepo     repository.LikeRepository
	bookmarkRepo repository.BookmarkRepository
	followRepo   repository.FollowRepository
	userRepo     repository.UserRepository
	photoService *PhotoService
	rateLimit    *RateLimitService
}

func NewSocialService(
	likeRepo repository.LikeRepository,
	bookmarkRepo repository.BookmarkRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	photoService *PhotoService,
	rateLimit *RateLimitService,
) *SocialService {
	return &SocialService{
		likeRepo:     likeRepo,
		bookmarkRepo: bookmarkRepo,
		followRepo:   followRepo,
		userRepo:     userRepo,
		photoService: photoService,
		rateLimit:    rateLimit,
	}
}

// ToggleLike flips the like edge and returns the new state plus the like
// count recomputed from storage. Counting existing rows instead of keeping an
// incremental tally avoids drift under concurrent toggles. Liking your own
// photo is allowed.
func (s *SocialService) ToggleLike(userID, photoID string) (liked bool, likeCount int, err error) {
	err = s.rateLimit.Require(UserKey(userID), "like:toggle", 30, time.Minute)
	if err != nil {
		return false, 0, err
	}

	err = s.photoService.AssertViewable(photoID, userID)
	if err != nil {
		return false, 0, err
	}

	exists, err := s.likeRepo.Exists(userID, photoID)
	if err != nil {
		return false, 0, err
	}

	if exists {
		_, err = s.likeRepo.Delete(userID, photoID)
		liked = false
	} else {
		err = s.likeRepo.Create(&model.Like{UserID: userID, PhotoID: photoID, CreatedAt: time.Now()})
		if errors.Is(err, repository.ErrDuplicateEdge) {
			// A concurrent toggle created the edge between our read and
			// write; the edge exists, which is the state we wanted.
			err = nil
		}
		liked = true
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}

	likeCount, err = s.likeRepo.CountByPhoto(photoID)
	if err != nil {
		return false, 0, err
	}

	return liked, likeCount, nil
}

// ToggleBookmark flips the bookmark edge and returns the new state.
func (s *SocialService) ToggleBookmark(userID, photoID string) (bookmarked bool, err error) {
	err = s.rateLimit.Require(UserKey(userID), "bookmark:toggle", 20, time.Minute)
	if err != nil {
		return false, err
	}

	err = s.photoService.AssertViewable(photoID, userID)
	if err != nil {
		return false, err
	}

	exists, err := s.bookmarkRepo.Exists(userID, photoID)
	if err != nil {
		return false, err
	}

	if exists {
		_, err = s.bookmarkRepo.Delete(userID, photoID)
		bookmarked = false
	} else {
		err = s.bookmarkRepo.Create(&model.Bookmark{UserID: userID, PhotoID: photoID, CreatedAt: time.Now()})
		if errors.Is(err, repository.ErrDuplicateEdge) {
			err = nil
		}
		bookmarked = true
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %w", err)
	}

	return bookmarked, nil
}

// ToggleFollow flips the follow edge between two users. Following yourself is
// forbidden; the check runs after the rate limit so abusive callers still
// consume their budget.
func (s *SocialService) ToggleFollow(viewerID, targetUserID string) (following bool, err error) {
	err = s.rateLimit.Require(UserKey(viewerID), "follow:toggle", 10, time.Minute)
	if err != nil {
		return false, err
	}

	if viewerID == targetUserID {
		return false, ErrSelfFollow
	}

	_, err = s.userRepo.ByID(targetUserID)
	if err != nil {
		return false, err
	}

	exists, err := s.followRepo.Exists(viewerID, targetUserID)
	if err != nil {
		return false, err
	}

	if exists {
		_, err = s.followRepo.Delete(viewerID, targetUserID)
		following = false
	} else {
		err = s.followRepo.Create(&model.Follow{FollowerID: viewerID, FollowingID: targetUserID, CreatedAt: time.Now()})
		if errors.Is(err, repository.ErrDuplicateEdge) {
			err = nil
		}
		following = true
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle follow: %w", err)
	}

	return following, nil
}
