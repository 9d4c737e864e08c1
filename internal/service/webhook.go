package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/galaxyhq/galaxy/internal/repository"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

// ModerationWebhookService receives decisions from the external moderation
// backoffice. Payloads are signed per the Standard Webhooks spec.
type ModerationWebhookService struct {
	secret         string
	commentService *CommentService
	reportRepo     repository.ReportRepository
}

func NewModerationWebhookService(secret string, commentService *CommentService, reportRepo repository.ReportRepository) *ModerationWebhookService {
	return &ModerationWebhookService{
		secret:         secret,
		commentService: commentService,
		reportRepo:     reportRepo,
	}
}

func (s *ModerationWebhookService) HandleWebhook(payload []byte, webhookID, timestamp, signature string) error {
	if s.secret == "" {
		slog.Warn("moderation no webhook secret configured, skipping signature verification")
	} else {
		wh, err := standardwebhooks.NewWebhookRaw([]byte(s.secret))
		if err != nil {
			return fmt.Errorf("failed to create webhook verifier: %w", err)
		}

		headers := http.Header{}
		headers.Set("webhook-id", webhookID)
		headers.Set("webhook-timestamp", timestamp)
		headers.Set("webhook-signature", signature)

		err = wh.Verify(payload, headers)
		if err != nil {
			return fmt.Errorf("invalid webhook signature: %w", err)
		}
	}

	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}

	err := json.Unmarshal(payload, &event)
	if err != nil {
		return fmt.Errorf("failed to parse webhook: %w", err)
	}

	slog.Info("moderation webhook received", "event_type", event.Type)

	switch event.Type {
	case "comment.hidden":
		return s.handleCommentHidden(event.Data)
	case "report.resolved":
		return s.handleReportResolved(event.Data)
	default:
		slog.Warn("moderation webhook unknown event type", "event_type", event.Type)
		return nil
	}
}

func (s *ModerationWebhookService) handleCommentHidden(data json.RawMessage) error {
	var payload struct {
		CommentID string `json:"comment_id"`
	}

	err := json.Unmarshal(data, &payload)
	if err != nil {
		return fmt.Errorf("failed to parse comment.hidden payload: %w", err)
	}
	if payload.CommentID == "" {
		return fmt.Errorf("comment.hidden payload missing comment_id")
	}

	err = s.commentService.Hide(payload.CommentID)
	if err != nil {
		// Deliveries are retried; a comment that is already hidden or gone
		// must not fail the retry forever
		if errors.Is(err, repository.ErrCommentNotFound) {
			slog.Warn("moderation webhook comment already hidden or missing", "comment_id", payload.CommentID)
			return nil
		}
		return fmt.Errorf("failed to hide comment %s: %w", payload.CommentID, err)
	}

	slog.Info("comment hidden via moderation webhook", "comment_id", payload.CommentID)
	return nil
}

func (s *ModerationWebhookService) handleReportResolved(data json.RawMessage) error {
	var payload struct {
		ReportID string `json:"report_id"`
	}

	err := json.Unmarshal(data, &payload)
	if err != nil {
		return fmt.Errorf("failed to parse report.resolved payload: %w", err)
	}
	if payload.ReportID == "" {
		return fmt.Errorf("report.resolved payload missing report_id")
	}

	err = s.reportRepo.Resolve(payload.ReportID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			slog.Warn("moderation webhook report already resolved or missing", "report_id", payload.ReportID)
			return nil
		}
		return fmt.Errorf("failed to resolve report %s: %w", payload.ReportID, err)
	}

	slog.Info("report resolved via moderation webhook", "report_id", payload.ReportID)
	return nil
}
