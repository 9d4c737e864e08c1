package service

import (
	"fmt"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/repository"
)

// RateLimitedError is returned when a fixed-window limit is exhausted. It
// carries the number of seconds until the window resets so clients know when
// a retry can succeed.
type RateLimitedError struct {
	RetryAfter int // seconds until resetAt, always >= 1
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, try again in %ds", e.RetryAfter)
}

type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimitService enforces fixed-window counters persisted in the store.
// Fixed windows reset at a boundary rather than sliding, so a burst around
// the boundary can reach up to ~2x the limit across adjacent windows; that is
// an accepted property of the strategy, not a defect.
type RateLimitService struct {
	repo repository.RateLimitRepository
	now  func() time.Time
}

func NewRateLimitService(repo repository.RateLimitRepository) *RateLimitService {
	return &RateLimitService{
		repo: repo,
		now:  time.Now,
	}
}

// bucketID couples the window length into the storage key so that changing a
// bucket's window starts a fresh counter instead of colliding with stale rows
// recorded under the old window.
func bucketID(bucket string, window time.Duration) string {
	return fmt.Sprintf("%s:%d", bucket, window.Milliseconds())
}

// Check applies one request against the (key, bucket) counter and reports
// whether it is allowed. The counter transition is a single atomic
// increment-or-reset in the store, so concurrent callers cannot lose updates
// to each other.
func (s *RateLimitService) Check(key, bucket string, limit int, window time.Duration) (*RateLimitResult, error) {
	now := s.now()

	counter, err := s.repo.Bump(key, bucketID(bucket, window), now.UnixMilli(), now.Add(window).UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to bump rate limit counter: %w", err)
	}

	return resultFor(counter, limit), nil
}

func resultFor(counter *model.RateLimitCounter, limit int) *RateLimitResult {
	resetAt := time.UnixMilli(counter.ResetAt)

	if counter.Count > limit {
		return &RateLimitResult{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	remaining := limit - counter.Count
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{Allowed: true, Remaining: remaining, ResetAt: resetAt}
}

// Require fails the calling action with a RateLimitedError when the limit is
// exhausted.
func (s *RateLimitService) Require(key, bucket string, limit int, window time.Duration) error {
	result, err := s.Check(key, bucket, limit, window)
	if err != nil {
		return err
	}

	if !result.Allowed {
		seconds := int((result.ResetAt.Sub(s.now()) + time.Second - 1) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		return &RateLimitedError{RetryAfter: seconds}
	}

	return nil
}

// UserKey and IPKey build rate-limit actor keys for account-scoped and
// network-scoped buckets.
func UserKey(userID string) string {
	return "user:" + userID
}

func IPKey(ip string) string {
	return "ip:" + ip
}
