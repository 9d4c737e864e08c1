package repository

import (
	"errors"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(comment *model.Comment) error
	VisibleByPhoto(photoID string, limit int) ([]*model.Comment, error)
	Hide(id string, at time.Time) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (id, photo_id, author_id, body, created_at, hidden_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		comment.ID,
		comment.PhotoID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
		comment.HiddenAt,
	)

	return err
}

func (r *commentRepository) VisibleByPhoto(photoID string, limit int) ([]*model.Comment, error) {
	var comments []*model.Comment
	query := `SELECT cm.*, u.username AS author_username, u.name AS author_name, u.avatar_path AS author_avatar
	          FROM comments cm
	          JOIN users u ON u.id = cm.author_id
	          WHERE cm.photo_id = $1 AND cm.hidden_at IS NULL
	          ORDER BY cm.created_at ASC
	          LIMIT $2`

	err := r.db.Select(&comments, query, photoID, limit)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) Hide(id string, at time.Time) error {
	query := `UPDATE comments SET hidden_at = $1 WHERE id = $2 AND hidden_at IS NULL`

	result, err := r.db.Exec(query, at, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}
