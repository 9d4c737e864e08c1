package repository

import (
	"database/sql"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/jmoiron/sqlx"
)

type FollowRepository interface {
	Exists(followerID, followingID string) (bool, error)
	Create(follow *model.Follow) error
	Delete(followerID, followingID string) (bool, error)
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(followerID, followingID string) (bool, error) {
	var one int
	query := `SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2`

	err := r.db.Get(&one, query, followerID, followingID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *followRepository) Create(follow *model.Follow) error {
	query := `INSERT INTO follows (follower_id, following_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(query, follow.FollowerID, follow.FollowingID, follow.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEdge
		}
		return err
	}

	return nil
}

func (r *followRepository) Delete(followerID, followingID string) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`

	result, err := r.db.Exec(query, followerID, followingID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
