package repository

import (
	"database/sql"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/jmoiron/sqlx"
)

type BookmarkRepository interface {
	Exists(userID, photoID string) (bool, error)
	Create(bookmark *model.Bookmark) error
	Delete(userID, photoID string) (bool, error)
}

type bookmarkRepository struct {
	db *sqlx.DB
}

func NewBookmarkRepository(db *sqlx.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Exists(userID, photoID string) (bool, error) {
	var one int
	query := `SELECT 1 FROM bookmarks WHERE user_id = $1 AND photo_id = $2`

	err := r.db.Get(&one, query, userID, photoID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *bookmarkRepository) Create(bookmark *model.Bookmark) error {
	query := `INSERT INTO bookmarks (user_id, photo_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(query, bookmark.UserID, bookmark.PhotoID, bookmark.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEdge
		}
		return err
	}

	return nil
}

func (r *bookmarkRepository) Delete(userID, photoID string) (bool, error) {
	query := `DELETE FROM bookmarks WHERE user_id = $1 AND photo_id = $2`

	result, err := r.db.Exec(query, userID, photoID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
