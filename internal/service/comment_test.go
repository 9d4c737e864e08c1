package service

import (
	"strings"
	"testing"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/moderation"
	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(photos *fakePhotoRepo) (*CommentService, *fakeCommentRepo) {
	comments := &fakeCommentRepo{}
	photoService := newPhotoService(photos, newFakeUserRepo(), nil)
	svc := NewCommentService(comments, photoService, moderation.NewFilter(""), NewRateLimitService(newFakeRateLimitRepo()))
	return svc, comments
}

func commenter() *model.User {
	return &model.User{ID: "bob", Username: "bob", Name: "Bob"}
}

func TestAddCommentPersistsTrimmedBody(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPublic, time.Now()))
	svc, comments := newCommentFixture(photos)

	comment, err := svc.Add(commenter(), "p1", "  lovely tones  ")
	require.NoError(t, err)
	assert.Equal(t, "lovely tones", comment.Body)
	assert.Equal(t, "bob", comment.AuthorID)
	assert.Equal(t, "bob", comment.AuthorUsername)
	assert.Len(t, comments.comments, 1)
}

func TestAddCommentModerationRejection(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPublic, time.Now()))
	svc, comments := newCommentFixture(photos)

	tests := []struct {
		name   string
		body   string
		detail error
	}{
		{"empty", "   ", moderation.ErrEmpty},
		{"too long", strings.Repeat("ab", 501), moderation.ErrTooLong},
		{"too many links", "https://a.com https://b.com https://c.com", moderation.ErrTooManyLinks},
		{"blocked term", "pure spam", moderation.ErrBlockedTerm},
		{"repeated chars", "no" + strings.Repeat("o", 15), moderation.ErrRepeatedChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(commenter(), "p1", tt.body)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCommentRejected)
			// The moderation verdict is carried in the message, not the chain
			assert.Contains(t, err.Error(), tt.detail.Error())
		})
	}

	assert.Empty(t, comments.comments, "rejected comments are never written")
}

func TestAddCommentVisibilityGateRunsBeforeModeration(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPrivate, time.Now()))
	svc, comments := newCommentFixture(photos)

	// The body would also fail moderation; the gate error wins
	_, err := svc.Add(commenter(), "p1", "")
	assert.ErrorIs(t, err, repository.ErrPhotoNotFound)
	assert.Empty(t, comments.comments)
}

func TestAddCommentRateLimit(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPublic, time.Now()))
	svc, _ := newCommentFixture(photos)

	var err error
	for i := 0; i < 10; i++ {
		_, err = svc.Add(commenter(), "p1", "nice")
		require.NoError(t, err)
	}

	_, err = svc.Add(commenter(), "p1", "nice")
	var limited *RateLimitedError
	require.ErrorAs(t, err, &limited)
}

func TestListByPhotoExcludesHidden(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPublic, time.Now()))
	svc, _ := newCommentFixture(photos)

	first, err := svc.Add(commenter(), "p1", "first")
	require.NoError(t, err)
	_, err = svc.Add(commenter(), "p1", "second")
	require.NoError(t, err)

	require.NoError(t, svc.Hide(first.ID))

	listed, err := svc.ListByPhoto("p1", "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "second", listed[0].Body)

	// Hiding twice reports not found
	assert.ErrorIs(t, svc.Hide(first.ID), repository.ErrCommentNotFound)
}

func TestListByPhotoAppliesVisibilityGate(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPrivate, time.Now()))
	svc, _ := newCommentFixture(photos)

	_, err := svc.ListByPhoto("p1", "")
	assert.ErrorIs(t, err, ErrSignInRequired)

	_, err = svc.ListByPhoto("p1", "bob")
	assert.ErrorIs(t, err, repository.ErrPhotoNotFound)

	_, err = svc.ListByPhoto("p1", "alice")
	assert.NoError(t, err)
}
