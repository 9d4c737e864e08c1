package service

import (
	"sort"
	"strings"
	"time"

	"github.com/galaxyhq/galaxy/internal/imagehost"
	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/repository"
)

// In-memory fakes mirroring the repository contracts, including the sentinel
// errors the services branch on.

type fakeRateLimitRepo struct {
	counters map[string]*model.RateLimitCounter
}

func newFakeRateLimitRepo() *fakeRateLimitRepo {
	return &fakeRateLimitRepo{counters: make(map[string]*model.RateLimitCounter)}
}

func (r *fakeRateLimitRepo) Bump(key, bucket string, nowMs, resetAtMs int64) (*model.RateLimitCounter, error) {
	id := key + "|" + bucket
	c, ok := r.counters[id]
	if !ok || c.ResetAt <= nowMs {
		c = &model.RateLimitCounter{Key: key, Bucket: bucket, Count: 1, ResetAt: resetAtMs}
		r.counters[id] = c
	} else {
		c.Count++
	}
	out := *c
	return &out, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicateUser
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ByID(id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateAvatar(id string, avatarPath *string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.AvatarPath = avatarPath
	return nil
}

type fakePhotoRepo struct {
	photos  map[string]*model.Photo
	follows map[string]bool // "follower|following"
	created []*model.Photo
}

func newFakePhotoRepo(photos ...*model.Photo) *fakePhotoRepo {
	r := &fakePhotoRepo{
		photos:  make(map[string]*model.Photo),
		follows: make(map[string]bool),
	}
	for _, p := range photos {
		r.photos[p.ID] = p
	}
	return r
}

func (r *fakePhotoRepo) follow(followerID, followingID string) {
	r.follows[followerID+"|"+followingID] = true
}

func (r *fakePhotoRepo) Create(photo *model.Photo) error {
	r.photos[photo.ID] = photo
	r.created = append(r.created, photo)
	return nil
}

func (r *fakePhotoRepo) ByID(id string) (*model.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, repository.ErrPhotoNotFound
	}
	return p, nil
}

func (r *fakePhotoRepo) sorted() []*model.Photo {
	out := make([]*model.Photo, 0, len(r.photos))
	for _, p := range r.photos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakePhotoRepo) Explore(categorySlug string, limit int, cursor *repository.ExploreCursor) ([]*model.Photo, error) {
	var out []*model.Photo
	for _, p := range r.sorted() {
		if p.Visibility != model.VisibilityPublic {
			continue
		}
		if categorySlug != "" && p.CategorySlug != categorySlug {
			continue
		}
		if cursor != nil {
			after := p.CreatedAt.Before(cursor.CreatedAt) ||
				(p.CreatedAt.Equal(cursor.CreatedAt) && p.ID < cursor.ID)
			if !after {
				continue
			}
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) Feed(viewerID string, limit int, cursor *repository.ExploreCursor) ([]*model.Photo, error) {
	var out []*model.Photo
	for _, p := range r.sorted() {
		if p.Visibility != model.VisibilityPublic {
			continue
		}
		if p.AuthorID != viewerID && !r.follows[viewerID+"|"+p.AuthorID] {
			continue
		}
		if cursor != nil {
			after := p.CreatedAt.Before(cursor.CreatedAt) ||
				(p.CreatedAt.Equal(cursor.CreatedAt) && p.ID < cursor.ID)
			if !after {
				continue
			}
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) ByAuthor(authorID string, publicOnly bool, limit int) ([]*model.Photo, error) {
	var out []*model.Photo
	for _, p := range r.sorted() {
		if p.AuthorID != authorID {
			continue
		}
		if publicOnly && p.Visibility != model.VisibilityPublic {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories []*model.Category
}

func (r *fakeCategoryRepo) All() ([]*model.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) BySlug(slug string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

// fakeEdgeRepo backs likes, bookmarks and follows. createErr lets tests
// simulate the duplicate-insert race.
type fakeEdgeRepo struct {
	edges     map[string]bool
	createErr error
}

func newFakeEdgeRepo() *fakeEdgeRepo {
	return &fakeEdgeRepo{edges: make(map[string]bool)}
}

func (r *fakeEdgeRepo) key(a, b string) string { return a + "|" + b }

func (r *fakeEdgeRepo) Exists(a, b string) (bool, error) {
	return r.edges[r.key(a, b)], nil
}

func (r *fakeEdgeRepo) create(a, b string) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.edges[r.key(a, b)] = true
	return nil
}

func (r *fakeEdgeRepo) Delete(a, b string) (bool, error) {
	k := r.key(a, b)
	existed := r.edges[k]
	delete(r.edges, k)
	return existed, nil
}

type fakeLikeRepo struct{ fakeEdgeRepo }

func newFakeLikeRepo() *fakeLikeRepo { return &fakeLikeRepo{*newFakeEdgeRepo()} }

func (r *fakeLikeRepo) Create(like *model.Like) error {
	return r.create(like.UserID, like.PhotoID)
}

func (r *fakeLikeRepo) CountByPhoto(photoID string) (int, error) {
	n := 0
	for k, ok := range r.edges {
		if ok && strings.HasSuffix(k, "|"+photoID) {
			n++
		}
	}
	return n, nil
}

type fakeBookmarkRepo struct{ fakeEdgeRepo }

func newFakeBookmarkRepo() *fakeBookmarkRepo { return &fakeBookmarkRepo{*newFakeEdgeRepo()} }

func (r *fakeBookmarkRepo) Create(bookmark *model.Bookmark) error {
	return r.create(bookmark.UserID, bookmark.PhotoID)
}

type fakeFollowRepo struct{ fakeEdgeRepo }

func newFakeFollowRepo() *fakeFollowRepo { return &fakeFollowRepo{*newFakeEdgeRepo()} }

func (r *fakeFollowRepo) Create(follow *model.Follow) error {
	return r.create(follow.FollowerID, follow.FollowingID)
}

type fakeCommentRepo struct {
	comments []*model.Comment
}

func (r *fakeCommentRepo) Create(comment *model.Comment) error {
	r.comments = append(r.comments, comment)
	return nil
}

func (r *fakeCommentRepo) VisibleByPhoto(photoID string, limit int) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range r.comments {
		if c.PhotoID == photoID && c.HiddenAt == nil {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Hide(id string, at time.Time) error {
	for _, c := range r.comments {
		if c.ID == id && c.HiddenAt == nil {
			c.HiddenAt = &at
			return nil
		}
	}
	return repository.ErrCommentNotFound
}

type fakeReportRepo struct {
	reports []*model.Report
}

func (r *fakeReportRepo) Create(report *model.Report) error {
	r.reports = append(r.reports, report)
	return nil
}

func (r *fakeReportRepo) OpenByReporterAndPhoto(reporterID, photoID string) (*model.Report, error) {
	for _, rep := range r.reports {
		if rep.ReporterID == reporterID && rep.PhotoID == photoID && rep.Status == model.ReportStatusOpen {
			return rep, nil
		}
	}
	return nil, repository.ErrReportNotFound
}

func (r *fakeReportRepo) Resolve(id string) error {
	for _, rep := range r.reports {
		if rep.ID == id && rep.Status == model.ReportStatusOpen {
			rep.Status = model.ReportStatusResolved
			return nil
		}
	}
	return repository.ErrReportNotFound
}

// fakeHost returns canned image host responses so CreatePost can be tested
// without network access.
type fakeHost struct {
	folder    string
	resource  *imagehost.Resource
	resErr    error
	validURLs map[string]bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		folder:    "galaxy/photos/original",
		validURLs: make(map[string]bool),
	}
}

func (h *fakeHost) SignUpload() (*imagehost.UploadAuthorization, error) {
	return &imagehost.UploadAuthorization{
		CloudName: "demo",
		APIKey:    "key",
		Folder:    h.folder,
		PublicID:  h.folder + "/generated",
		Timestamp: 1700000000,
		Signature: "sig",
	}, nil
}

func (h *fakeHost) Resource(publicID string) (*imagehost.Resource, error) {
	if h.resErr != nil {
		return nil, h.resErr
	}
	return h.resource, nil
}

func (h *fakeHost) Folder() string { return h.folder }

func (h *fakeHost) ValidDeliveryURL(rawURL string) bool {
	return h.validURLs[rawURL]
}
