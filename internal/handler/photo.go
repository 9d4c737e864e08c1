package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/galaxyhq/galaxy/internal/ctxkeys"
	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/galaxyhq/galaxy/internal/service"
)

type photoHandler struct {
	photoService *service.PhotoService
}

func NewPhotoHandler(photoService *service.PhotoService) *photoHandler {
	return &photoHandler{photoService: photoService}
}

// viewerID returns the authenticated user's id, or "" for anonymous requests
func viewerID(r *http.Request) string {
	user := ctxkeys.User(r.Context())
	if user == nil {
		return ""
	}
	return user.ID
}

type exploreCursorResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type exploreResponse struct {
	Photos     []photoResponse        `json:"photos"`
	NextCursor *exploreCursorResponse `json:"nextCursor"`
}

// parsePage reads the limit and the optional (cursorId, cursorCreatedAt)
// keyset cursor from the query string. A malformed timestamp is an error; a
// missing cursor is simply nil.
func parsePage(q url.Values) (int, *repository.ExploreCursor, error) {
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	cursorID := q.Get("cursorId")
	cursorCreatedAt := q.Get("cursorCreatedAt")
	if cursorID == "" || cursorCreatedAt == "" {
		return limit, nil, nil
	}

	at, err := time.Parse(time.RFC3339Nano, cursorCreatedAt)
	if err != nil {
		return 0, nil, err
	}

	return limit, &repository.ExploreCursor{CreatedAt: at, ID: cursorID}, nil
}

// Explore lists photos newest first with keyset pagination. The cursor is the
// (createdAt, id) pair of the last photo on the previous page.
func (h *photoHandler) Explore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, cursor, err := parsePage(q)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	ip := ctxkeys.ClientIP(r.Context())

	photos, next, err := h.photoService.Explore(ip, q.Get("category"), limit, cursor)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := exploreResponse{Photos: photoResponsesFrom(photos)}
	if next != nil {
		resp.NextCursor = &exploreCursorResponse{ID: next.ID, CreatedAt: next.CreatedAt}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Feed lists the viewer's home feed: their own public photos plus those of
// everyone they follow, paged the same way as Explore.
func (h *photoHandler) Feed(w http.ResponseWriter, r *http.Request) {
	limit, cursor, err := parsePage(r.URL.Query())
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	photos, next, err := h.photoService.Feed(viewerID(r), limit, cursor)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := exploreResponse{Photos: photoResponsesFrom(photos)}
	if next != nil {
		resp.NextCursor = &exploreCursorResponse{ID: next.ID, CreatedAt: next.CreatedAt}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *photoHandler) Show(w http.ResponseWriter, r *http.Request) {
	photo, err := h.photoService.Photo(r.PathValue("id"), viewerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, photoResponseFrom(photo))
}

func (h *photoHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.photoService.Categories()
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponseFrom(c))
	}

	writeJSON(w, http.StatusOK, map[string][]categoryResponse{"categories": out})
}

func (h *photoHandler) UserPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photoService.UserPhotos(r.PathValue("username"), viewerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]photoResponse{"photos": photoResponsesFrom(photos)})
}

// SignUpload hands the client a short-lived signed authorization for a direct
// upload to the image host
func (h *photoHandler) SignUpload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	auth, err := h.photoService.SignUpload(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, auth)
}

type createPostRequest struct {
	CategorySlug string `json:"categorySlug"`
	Caption      string `json:"caption"`
	Visibility   string `json:"visibility"`
	PublicID     string `json:"publicId"`
	AssetURL     string `json:"assetUrl"`

	Exif struct {
		Make         *string    `json:"make"`
		Model        *string    `json:"model"`
		LensModel    *string    `json:"lensModel"`
		FNumber      *float64   `json:"fNumber"`
		ExposureTime *string    `json:"exposureTime"`
		Iso          *int       `json:"iso"`
		FocalLength  *float64   `json:"focalLength"`
		TakenAt      *time.Time `json:"takenAt"`
	} `json:"exif"`
}

func (h *photoHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createPostRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	photo, err := h.photoService.CreatePost(user.ID, service.CreatePostInput{
		CategorySlug:     req.CategorySlug,
		Caption:          req.Caption,
		Visibility:       req.Visibility,
		PublicID:         req.PublicID,
		AssetURL:         req.AssetURL,
		ExifMake:         req.Exif.Make,
		ExifModel:        req.Exif.Model,
		ExifLensModel:    req.Exif.LensModel,
		ExifFNumber:      req.Exif.FNumber,
		ExifExposureTime: req.Exif.ExposureTime,
		ExifIso:          req.Exif.Iso,
		ExifFocalLength:  req.Exif.FocalLength,
		ExifTakenAt:      req.Exif.TakenAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, photoResponseFrom(photo))
}
