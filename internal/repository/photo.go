package repository

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrPhotoNotFound = errors.New("photo not found")

// ExploreCursor is an opaque two-field keyset cursor: the last-seen creation
// timestamp plus id, for stable (created_at DESC, id DESC) pagination.
type ExploreCursor struct {
	CreatedAt time.Time
	ID        string
}

type PhotoRepository interface {
	Create(photo *model.Photo) error
	ByID(id string) (*model.Photo, error)
	Explore(categorySlug string, limit int, cursor *ExploreCursor) ([]*model.Photo, error)
	Feed(viewerID string, limit int, cursor *ExploreCursor) ([]*model.Photo, error)
	ByAuthor(authorID string, publicOnly bool, limit int) ([]*model.Photo, error)
}

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(photo *model.Photo) error {
	query := `INSERT INTO photos (
	              id, author_id, category_id, caption, visibility,
	              public_id, asset_url, width, height, format, bytes,
	              exif_make, exif_model, exif_lens_model, exif_f_number,
	              exif_exposure_time, exif_iso, exif_focal_length, exif_taken_at,
	              created_at
	          ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.db.Exec(query,
		photo.ID,
		photo.AuthorID,
		photo.CategoryID,
		photo.Caption,
		photo.Visibility,
		photo.PublicID,
		photo.AssetURL,
		photo.Width,
		photo.Height,
		photo.Format,
		photo.Bytes,
		photo.ExifMake,
		photo.ExifModel,
		photo.ExifLensModel,
		photo.ExifFNumber,
		photo.ExifExposureTime,
		photo.ExifIso,
		photo.ExifFocalLength,
		photo.ExifTakenAt,
		photo.CreatedAt,
	)

	return err
}

func (r *photoRepository) ByID(id string) (*model.Photo, error) {
	photo := &model.Photo{}
	query := `SELECT * FROM photos WHERE id = $1`

	err := r.db.Get(photo, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPhotoNotFound
	}

	return photo, err
}

func (r *photoRepository) Explore(categorySlug string, limit int, cursor *ExploreCursor) ([]*model.Photo, error) {
	query := `SELECT p.*, c.slug AS category_slug, c.name AS category_name
	          FROM photos p
	          JOIN categories c ON c.id = p.category_id
	          WHERE p.visibility = $1`
	args := []any{model.VisibilityPublic}

	if categorySlug != "" {
		args = append(args, categorySlug)
		query += ` AND c.slug = $2`
	}

	if cursor != nil {
		// Keyset condition: strictly after the cursor row in
		// (created_at DESC, id DESC) order.
		n := len(args)
		query += ` AND (p.created_at < $` + strconv.Itoa(n+1) + ` OR (p.created_at = $` + strconv.Itoa(n+1) + ` AND p.id < $` + strconv.Itoa(n+2) + `))`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}

	args = append(args, limit)
	query += ` ORDER BY p.created_at DESC, p.id DESC LIMIT $` + strconv.Itoa(len(args))

	var photos []*model.Photo
	err := r.db.Select(&photos, query, args...)
	if err != nil {
		return nil, err
	}

	return photos, nil
}

// Feed lists PUBLIC photos by the viewer and by the authors the viewer
// follows, with the same (created_at DESC, id DESC) keyset pagination as
// Explore.
func (r *photoRepository) Feed(viewerID string, limit int, cursor *ExploreCursor) ([]*model.Photo, error) {
	query := `SELECT p.*, c.slug AS category_slug, c.name AS category_name
	          FROM photos p
	          JOIN categories c ON c.id = p.category_id
	          WHERE p.visibility = $1
	            AND (p.author_id = $2 OR p.author_id IN (
	                SELECT following_id FROM follows WHERE follower_id = $2))`
	args := []any{model.VisibilityPublic, viewerID}

	if cursor != nil {
		n := len(args)
		query += ` AND (p.created_at < $` + strconv.Itoa(n+1) + ` OR (p.created_at = $` + strconv.Itoa(n+1) + ` AND p.id < $` + strconv.Itoa(n+2) + `))`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}

	args = append(args, limit)
	query += ` ORDER BY p.created_at DESC, p.id DESC LIMIT $` + strconv.Itoa(len(args))

	var photos []*model.Photo
	err := r.db.Select(&photos, query, args...)
	if err != nil {
		return nil, err
	}

	return photos, nil
}

func (r *photoRepository) ByAuthor(authorID string, publicOnly bool, limit int) ([]*model.Photo, error) {
	query := `SELECT p.*, c.slug AS category_slug, c.name AS category_name
	          FROM photos p
	          JOIN categories c ON c.id = p.category_id
	          WHERE p.author_id = $1`
	args := []any{authorID}

	if publicOnly {
		args = append(args, model.VisibilityPublic)
		query += ` AND p.visibility = $2`
	}

	args = append(args, limit)
	query += ` ORDER BY p.created_at DESC, p.id DESC LIMIT $` + strconv.Itoa(len(args))

	var photos []*model.Photo
	err := r.db.Select(&photos, query, args...)
	if err != nil {
		return nil, err
	}

	return photos, nil
}
