package repository

import (
	"database/sql"
	"errors"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/jmoiron/sqlx"
)

// ErrDuplicateEdge signals that a toggle edge already exists. Under concurrent
// toggles on the same edge both sides can observe "absent" and insert; the
// unique key rejects the loser, which callers treat as the other toggle having
// won rather than as a failure.
var ErrDuplicateEdge = errors.New("edge already exists")

type LikeRepository interface {
	Exists(userID, photoID string) (bool, error)
	Create(like *model.Like) error
	Delete(userID, photoID string) (bool, error)
	CountByPhoto(photoID string) (int, error)
}

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(userID, photoID string) (bool, error) {
	var one int
	query := `SELECT 1 FROM likes WHERE user_id = $1 AND photo_id = $2`

	err := r.db.Get(&one, query, userID, photoID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *likeRepository) Create(like *model.Like) error {
	query := `INSERT INTO likes (user_id, photo_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(query, like.UserID, like.PhotoID, like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEdge
		}
		return err
	}

	return nil
}

func (r *likeRepository) Delete(userID, photoID string) (bool, error) {
	query := `DELETE FROM likes WHERE user_id = $1 AND photo_id = $2`

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

func (r *likeRepository) CountByPhoto(photoID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM likes WHERE photo_id = $1`

	err := r.db.QueryRow(query, photoID).Scan(&count)
	return count, err
}
