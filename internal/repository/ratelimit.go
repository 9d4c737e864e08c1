package repository

import (
	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/jmoiron/sqlx"
)

type RateLimitRepository interface {
	// Bump atomically applies the fixed-window transition for (key, bucket):
	// create the counter at 1 if absent, reset it to 1 if the window has
	// elapsed, increment it otherwise. A single conditional upsert keeps
	// concurrent callers from losing updates to each other.
	Bump(key, bucket string, nowMs, resetAtMs int64) (*model.RateLimitCounter, error)
}

type rateLimitRepository struct {
	db *sqlx.DB
}

func NewRateLimitRepository(db *sqlx.DB) RateLimitRepository {
	return &rateLimitRepository{db: db}
}

func (r *rateLimitRepository) Bump(key, bucket string, nowMs, resetAtMs int64) (*model.RateLimitCounter, error) {
	counter := &model.RateLimitCounter{Key: key, Bucket: bucket}
	query := `INSERT INTO rate_limits (key, bucket, count, reset_at) VALUES ($1, $2, 1, $3)
	          ON CONFLICT (key, bucket) DO UPDATE SET
	              count = CASE WHEN rate_limits.reset_at <= $4 THEN 1 ELSE rate_limits.count + 1 END,
	              reset_at = CASE WHEN rate_limits.reset_at <= $4 THEN $3 ELSE rate_limits.reset_at END
	          RETURNING count, reset_at`

	err := r.db.QueryRow(query, key, bucket, resetAtMs, nowMs).Scan(&counter.Count, &counter.ResetAt)
	if err != nil {
		return nil, err
	}

	return counter, nil
}
