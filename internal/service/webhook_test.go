package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base64 of a 24-byte test key
const webhookTestSecret = "dGVzdHNlY3JldHRlc3RzZWNyZXR0ZXN0c2VjcmV0"

func signWebhook(t *testing.T, payload []byte) (id, timestamp, signature string) {
	t.Helper()

	wh, err := standardwebhooks.NewWebhookRaw([]byte(webhookTestSecret))
	require.NoError(t, err)

	id = "msg_test"
	now := time.Now()
	signature, err = wh.Sign(id, now, payload)
	require.NoError(t, err)

	return id, fmt.Sprintf("%d", now.Unix()), signature
}

func TestModerationWebhookHidesComment(t *testing.T) {
	photos := newFakePhotoRepo(photoFixture("p1", "alice", model.VisibilityPublic, time.Now()))
	commentService, commentRepo := newCommentFixture(photos)
	svc := NewModerationWebhookService(webhookTestSecret, commentService, &fakeReportRepo{})

	comment, err := commentService.Add(commenter(), "p1", "borderline")
	require.NoError(t, err)

	payload := []byte(fmt.Sprintf(`{"type":"comment.hidden","data":{"comment_id":"%s"}}`, comment.ID))
	id, ts, sig := signWebhook(t, payload)

	require.NoError(t, svc.HandleWebhook(payload, id, ts, sig))
	require.NotNil(t, commentRepo.comments[0].HiddenAt)

	// Redelivery of the same event stays successful
	require.NoError(t, svc.HandleWebhook(payload, id, ts, sig))
}

func TestModerationWebhookResolvesReport(t *testing.T) {
	reports := &fakeReportRepo{}
	require.NoError(t, reports.Create(&model.Report{ID: "r1", Status: model.ReportStatusOpen}))

	photos := newFakePhotoRepo()
	commentService, _ := newCommentFixture(photos)
	svc := NewModerationWebhookService(webhookTestSecret, commentService, reports)

	payload := []byte(`{"type":"report.resolved","data":{"report_id":"r1"}}`)
	id, ts, sig := signWebhook(t, payload)

	require.NoError(t, svc.HandleWebhook(payload, id, ts, sig))
	assert.Equal(t, model.ReportStatusResolved, reports.reports[0].Status)
}

func TestModerationWebhookRejectsBadSignature(t *testing.T) {
	photos := newFakePhotoRepo()
	commentService, _ := newCommentFixture(photos)
	svc := NewModerationWebhookService(webhookTestSecret, commentService, &fakeReportRepo{})

	payload := []byte(`{"type":"comment.hidden","data":{"comment_id":"c1"}}`)
	id, ts, _ := signWebhook(t, payload)

	err := svc.HandleWebhook(payload, id, ts, "v1,forged")
	assert.Error(t, err)
}

func TestModerationWebhookIgnoresUnknownEvents(t *testing.T) {
	photos := newFakePhotoRepo()
	commentService, _ := newCommentFixture(photos)
	svc := NewModerationWebhookService(webhookTestSecret, commentService, &fakeReportRepo{})

	payload := []byte(`{"type":"photo.flagged","data":{}}`)
	id, ts, sig := signWebhook(t, payload)

	assert.NoError(t, svc.HandleWebhook(payload, id, ts, sig))
}

func TestModerationWebhookBadPayload(t *testing.T) {
	photos := newFakePhotoRepo()
	commentService, _ := newCommentFixture(photos)
	svc := NewModerationWebhookService(webhookTestSecret, commentService, &fakeReportRepo{})

	payload := []byte(`{"type":"comment.hidden","data":{}}`)
	id, ts, sig := signWebhook(t, payload)

	assert.Error(t, svc.HandleWebhook(payload, id, ts, sig), "missing comment_id is rejected")
}
