package model

import (
	"time"
)

// Like, Bookmark and Follow are many-to-many edges: existence of the row is
// the boolean state, with at most one row per (actor, target) pair.

type Like struct {
	UserID    string    `db:"user_id"`
	PhotoID   string    `db:"photo_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Bookmark struct {
	UserID    string    `db:"user_id"`
	PhotoID   string    `db:"photo_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Follow struct {
	FollowerID  string    `db:"follower_id"`
	FollowingID string    `db:"following_id"`
	CreatedAt   time.Time `db:"created_at"`
}
