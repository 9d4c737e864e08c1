package repository

import (
	"database/sql"
	"errors"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	All() ([]*model.Category, error)
	BySlug(slug string) (*model.Category, error)
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) All() ([]*model.Category, error) {
	var categories []*model.Category
	query := `SELECT * FROM categories ORDER BY name ASC`

	err := r.db.Select(&categories, query)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) BySlug(slug string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE slug = $1`

	err := r.db.Get(category, query, slug)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}

	return category, err
}
