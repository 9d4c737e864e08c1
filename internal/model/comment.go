package model

import (
	"time"
)

// Comment is append-only from the author's perspective. HiddenAt is set by a
// moderator (via the moderation webhook); hidden comments are excluded from
// listings.
type Comment struct {
	ID        string     `db:"id"`
	PhotoID   string     `db:"photo_id"`
	AuthorID  string     `db:"author_id"`
	Body      string     `db:"body"`
	CreatedAt time.Time  `db:"created_at"`
	HiddenAt  *time.Time `db:"hidden_at"`

	// Joined author fields for listings (not in comments table)
	AuthorUsername string  `db:"author_username"`
	AuthorName     string  `db:"author_name"`
	AuthorAvatar   *string `db:"author_avatar"`
}
