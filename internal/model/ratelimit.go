package model

// RateLimitCounter is one fixed-window counter row per (key, bucket) pair.
// The bucket column carries the window length so that changing a bucket's
// window starts a fresh counter instead of inheriting a stale one.
type RateLimitCounter struct {
	Key     string `db:"key"`
	Bucket  string `db:"bucket"`
	Count   int    `db:"count"`
	ResetAt int64  `db:"reset_at"` // unix milliseconds
}
