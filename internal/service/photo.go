package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/galaxyhq/galaxy/internal/imagehost"
	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/google/uuid"
)

var (
	// ErrSignInRequired is the anonymous-viewer outcome for private photos:
	// the viewer is prompted to sign in rather than told the photo is gone.
	ErrSignInRequired = errors.New("sign in required")

	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidVisibility = errors.New("invalid visibility")
	ErrInvalidUpload     = errors.New("invalid upload")
)

const (
	maxImageDimension = 10_000
	maxImageBytes     = 25 * 1024 * 1024

	explorePageDefault = 30
	explorePageMax     = 60
	userPhotosLimit    = 60
)

var allowedFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
	"avif": true,
	"gif":  true,
}

type PhotoService struct {
	repo         repository.PhotoRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	host         imagehost.Host
	rateLimit    *RateLimitService
}

func NewPhotoService(
	repo repository.PhotoRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	host imagehost.Host,
	rateLimit *RateLimitService,
) *PhotoService {
	return &PhotoService{
		repo:         repo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		host:         host,
		rateLimit:    rateLimit,
	}
}

// AssertViewable decides whether viewerID (empty for anonymous) may see the
// photo. PUBLIC and UNLISTED photos are viewable by anyone holding the id.
// For PRIVATE photos an anonymous viewer gets ErrSignInRequired, while an
// authenticated non-owner gets the same not-found error as a missing photo:
// "exists but private" must stay indistinguishable from "does not exist".
func (s *PhotoService) AssertViewable(photoID, viewerID string) error {
	photo, err := s.repo.ByID(photoID)
	if err != nil {
		return err
	}

	switch photo.Visibility {
	case model.VisibilityPublic, model.VisibilityUnlisted:
		return nil
	}

	// PRIVATE
	if viewerID == "" {
		return ErrSignInRequired
	}
	if photo.AuthorID != viewerID {
		return repository.ErrPhotoNotFound
	}
	return nil
}

// Photo fetches a single photo, applying the same visibility rules as
// AssertViewable.
func (s *PhotoService) Photo(photoID, viewerID string) (*model.Photo, error) {
	err := s.AssertViewable(photoID, viewerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ByID(photoID)
}

// SignUpload issues a signed upload authorization for the actor. The public
// id is server-generated so clients cannot steer uploads outside the fixed
// folder or overwrite existing assets.
func (s *PhotoService) SignUpload(userID string) (*imagehost.UploadAuthorization, error) {
	err := s.rateLimit.Require(UserKey(userID), "upload:sign", 10, time.Minute)
	if err != nil {
		return nil, err
	}

	return s.host.SignUpload()
}

type CreatePostInput struct {
	CategorySlug string
	Caption      string
	Visibility   string

	// Client-reported upload result; everything that matters is re-checked
	// against the image host.
	PublicID string
	AssetURL string

	ExifMake         *string
	ExifModel        *string
	ExifLensModel    *string
	ExifFNumber      *float64
	ExifExposureTime *string
	ExifIso          *int
	ExifFocalLength  *float64
	ExifTakenAt      *time.Time
}

// CreatePost confirms an upload and persists the photo row. The image host is
// the source of truth for dimensions, size and format; client-supplied values
// are never trusted.
func (s *PhotoService) CreatePost(userID string, in CreatePostInput) (*model.Photo, error) {
	err := s.rateLimit.Require(UserKey(userID), "photo:create", 10, time.Minute)
	if err != nil {
		return nil, err
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if !model.ValidVisibility(visibility) {
		return nil, ErrInvalidVisibility
	}

	if in.CategorySlug == "" {
		return nil, ErrInvalidCategory
	}
	if in.PublicID == "" || in.AssetURL == "" {
		return nil, fmt.Errorf("%w: missing public id or asset url", ErrInvalidUpload)
	}

	// Basic URL safety: require a delivery URL on the hosting CDN for this
	// account before spending an API round-trip.
	if !s.host.ValidDeliveryURL(in.AssetURL) {
		return nil, fmt.Errorf("%w: asset url does not match hosting account", ErrInvalidUpload)
	}

	// Enforce the folder prefix; public ids include their folder.
	if !strings.HasPrefix(in.PublicID, s.host.Folder()+"/") || strings.Contains(in.PublicID, "..") {
		return nil, fmt.Errorf("%w: public id outside upload folder", ErrInvalidUpload)
	}

	resource, err := s.host.Resource(in.PublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify upload: %w", err)
	}

	if resource.PublicID == "" || resource.PublicID != in.PublicID {
		return nil, fmt.Errorf("%w: public id mismatch", ErrInvalidUpload)
	}
	if resource.SecureURL == "" {
		return nil, fmt.Errorf("%w: missing secure url", ErrInvalidUpload)
	}
	if resource.Width <= 0 || resource.Width > maxImageDimension {
		return nil, fmt.Errorf("%w: invalid width", ErrInvalidUpload)
	}
	if resource.Height <= 0 || resource.Height > maxImageDimension {
		return nil, fmt.Errorf("%w: invalid height", ErrInvalidUpload)
	}
	if resource.Bytes <= 0 || resource.Bytes > maxImageBytes {
		return nil, fmt.Errorf("%w: invalid file size", ErrInvalidUpload)
	}

	format := strings.ToLower(resource.Format)
	if !allowedFormats[format] {
		return nil, fmt.Errorf("%w: unsupported image format %q", ErrInvalidUpload, resource.Format)
	}

	category, err := s.categoryRepo.BySlug(in.CategorySlug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	var caption *string
	if trimmed := strings.TrimSpace(in.Caption); trimmed != "" {
		caption = &trimmed
	}

	photo := &model.Photo{
		ID:         uuid.New().String(),
		AuthorID:   userID,
		CategoryID: category.ID,
		Caption:    caption,
		Visibility: visibility,

		PublicID: resource.PublicID,
		AssetURL: resource.SecureURL,
		Width:    resource.Width,
		Height:   resource.Height,
		Format:   format,
		Bytes:    resource.Bytes,

		ExifMake:         in.ExifMake,
		ExifModel:        in.ExifModel,
		ExifLensModel:    in.ExifLensModel,
		ExifFNumber:      in.ExifFNumber,
		ExifExposureTime: in.ExifExposureTime,
		ExifIso:          in.ExifIso,
		ExifFocalLength:  in.ExifFocalLength,
		ExifTakenAt:      in.ExifTakenAt,

		CreatedAt: time.Now(),
	}

	err = s.repo.Create(photo)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	return photo, nil
}

// Explore lists PUBLIC photos for the anonymous explore feed, rate limited by
// network address. The cursor keys on (created_at, id) for stable descending
// pagination.
func (s *PhotoService) Explore(ip, categorySlug string, limit int, cursor *repository.ExploreCursor) ([]*model.Photo, *repository.ExploreCursor, error) {
	err := s.rateLimit.Require(IPKey(ip), "api:explore", 240, time.Minute)
	if err != nil {
		return nil, nil, err
	}

	if limit < 1 {
		limit = explorePageDefault
	}
	if limit > explorePageMax {
		limit = explorePageMax
	}

	if categorySlug == "all" {
		categorySlug = ""
	}

	photos, err := s.repo.Explore(categorySlug, limit, cursor)
	if err != nil {
		return nil, nil, err
	}

	if len(photos) == 0 {
		return photos, nil, nil
	}

	last := photos[len(photos)-1]
	next := &repository.ExploreCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	return photos, next, nil
}

// Feed lists the signed-in viewer's home feed: PUBLIC photos by the viewer
// and by the authors they follow, newest first with the same cursor shape as
// Explore.
func (s *PhotoService) Feed(viewerID string, limit int, cursor *repository.ExploreCursor) ([]*model.Photo, *repository.ExploreCursor, error) {
	if limit < 1 {
		limit = explorePageDefault
	}
	if limit > explorePageMax {
		limit = explorePageMax
	}

	photos, err := s.repo.Feed(viewerID, limit, cursor)
	if err != nil {
		return nil, nil, err
	}

	if len(photos) == 0 {
		return photos, nil, nil
	}

	last := photos[len(photos)-1]
	next := &repository.ExploreCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	return photos, next, nil
}

func (s *PhotoService) Categories() ([]*model.Category, error) {
	return s.categoryRepo.All()
}

// UserPhotos lists a user's photos for their profile page. Owners see all of
// their photos; everyone else sees PUBLIC only. An unknown username yields an
// empty list rather than an error.
func (s *PhotoService) UserPhotos(username, viewerID string) ([]*model.Photo, error) {
	user, err := s.userRepo.ByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return []*model.Photo{}, nil
		}
		return nil, err
	}

	publicOnly := viewerID != user.ID
	return s.repo.ByAuthor(user.ID, publicOnly, userPhotosLimit)
}
