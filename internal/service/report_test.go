package service

import (
	"testing"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(photos *fakePhotoRepo) (*ReportService, *fakeReportRepo) {
	reports := &fakeReportRepo{}
	photoService := newPhotoService(photos, newFakeUserRepo(), nil)
	email := NewEmailService("", "noreply@example.com", "support@example.com", "http://localhost:8090", "Galaxy", true)
	svc := NewReportService(reports, photos, photoService, email, NewRateLimitService(newFakeRateLimitRepo()))
	return svc, reports
}

func TestReportPhotoCreatesOpenReport(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPublic, time.Now()))
	svc, reports := newReportFixture(photos)

	report, err := svc.ReportPhoto("bob", "p1")
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusOpen, report.Status)
	assert.Equal(t, model.ReportTargetPhoto, report.TargetType)
	assert.Equal(t, "Inappropriate", report.Reason)
	assert.Len(t, reports.reports, 1)
}

func TestReportPhotoIdempotentWhileOpen(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPublic, time.Now()))
	svc, reports := newReportFixture(photos)

	first, err := svc.ReportPhoto("bob", "p1")
	require.NoError(t, err)

	second, err := svc.ReportPhoto("bob", "p1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeat report returns the existing open report")
	assert.Len(t, reports.reports, 1)

	// Once resolved, a fresh report can be opened
	require.NoError(t, reports.Resolve(first.ID))

	third, err := svc.ReportPhoto("bob", "p1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
	assert.Len(t, reports.reports, 2)
}

func TestReportPhotoSelfReportRejected(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPublic, time.Now()))
	svc, reports := newReportFixture(photos)

	_, err := svc.ReportPhoto("alice", "p1")
	assert.ErrorIs(t, err, ErrSelfReport)
	assert.Empty(t, reports.reports)
}

func TestReportPhotoVisibilityGate(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPrivate, time.Now()))
	svc, reports := newReportFixture(photos)

	_, err := svc.ReportPhoto("bob", "p1")
	assert.ErrorIs(t, err, repository.ErrPhotoNotFound)
	assert.Empty(t, reports.reports)
}

func TestReportPhotoRateLimit(t *testing.T) {
	photos := newFakePhotoRepo(
		photoFixture("p1", "alice", model.VisibilityPublic, time.Now()),
		photoFixture("p2", "alice", model.VisibilityPublic, time.Now()),
		photoFixture("p3", "alice", model.VisibilityPublic, time.Now()),
		photoFixture("p4", "alice", model.VisibilityPublic, time.Now()),
		photoFixture("p5", "alice", model.VisibilityPublic, time.Now()),
		photoFixture("p6", "alice", model.VisibilityPublic, time.Now()),
	)
	svc, _ := newReportFixture(photos)

	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		_, err := svc.ReportPhoto("bob", id)
		require.NoError(t, err)
	}

	_, err := svc.ReportPhoto("bob", "p6")
	var limited *RateLimitedError
	require.ErrorAs(t, err, &limited)
}
