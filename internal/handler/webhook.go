package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/galaxyhq/galaxy/internal/service"
)

type webhookHandler struct {
	moderationWebhook *service.ModerationWebhookService
}

func NewWebhookHandler(moderationWebhook *service.ModerationWebhookService) *webhookHandler {
	return &webhookHandler{moderationWebhook: moderationWebhook}
}

func (h *webhookHandler) Moderation(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		writeErrorCode(w, http.StatusBadRequest, "invalid_payload", "failed to read payload")
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	err = h.moderationWebhook.HandleWebhook(payload,
		r.Header.Get("webhook-id"),
		r.Header.Get("webhook-timestamp"),
		r.Header.Get("webhook-signature"),
	)
	if err != nil {
		slog.Error("failed to handle moderation webhook", "error", err)
		writeErrorCode(w, http.StatusBadRequest, "webhook_failed", "failed to process webhook")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
