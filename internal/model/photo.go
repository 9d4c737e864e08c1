package model

import (
	"time"
)

// Visibility is set once at photo creation and governs all read/mutate
// authorization afterwards.
const (
	VisibilityPublic   = "PUBLIC"
	VisibilityUnlisted = "UNLISTED"
	VisibilityPrivate  = "PRIVATE"
)

func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return true
	}
	return false
}

type Photo struct {
	ID         string  `db:"id"`
	AuthorID   string  `db:"author_id"`
	CategoryID string  `db:"category_id"`
	Caption    *string `db:"caption"`
	Visibility string  `db:"visibility"`

	// Asset metadata, confirmed against the image host at creation
	PublicID string `db:"public_id"`
	AssetURL string `db:"asset_url"`
	Width    int    `db:"width"`
	Height   int    `db:"height"`
	Format   string `db:"format"`
	Bytes    int64  `db:"bytes"`

	ExifMake         *string    `db:"exif_make"`
	ExifModel        *string    `db:"exif_model"`
	ExifLensModel    *string    `db:"exif_lens_model"`
	ExifFNumber      *float64   `db:"exif_f_number"`
	ExifExposureTime *string    `db:"exif_exposure_time"`
	ExifIso          *int       `db:"exif_iso"`
	ExifFocalLength  *float64   `db:"exif_focal_length"`
	ExifTakenAt      *time.Time `db:"exif_taken_at"`

	CreatedAt time.Time `db:"created_at"`

	// Joined category fields for listings (not in photos table)
	CategorySlug string `db:"category_slug"`
	CategoryName string `db:"category_name"`
}
