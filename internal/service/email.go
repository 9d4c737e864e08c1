package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client       *resend.Client
	fromEmail    string
	supportEmail string
	appURL       string
	appName      string
	isDev        bool
}

func NewEmailService(apiKey, fromEmail, supportEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:       client,
		fromEmail:    fromEmail,
		supportEmail: supportEmail,
		appURL:       appURL,
		appName:      appName,
		isDev:        isDev,
	}
}

// SendReportNotification tells the support inbox about a newly opened report.
func (s *EmailService) SendReportNotification(report *model.Report) error {
	photoURL := fmt.Sprintf("%s/post/%s", s.appURL, report.PhotoID)
	subject := fmt.Sprintf("[%s] New photo report (%s)", s.appName, report.Reason)
	body := fmt.Sprintf(
		"A new report was opened.\n\nReport:  %s\nPhoto:   %s\nReason:  %s\nStatus:  %s\n",
		report.ID, photoURL, report.Reason, report.Status,
	)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "report_notification", "to", s.supportEmail, "subject", subject, "report_id", report.ID)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{s.supportEmail},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "report_notification", "to", s.supportEmail, "report_id", report.ID)
	}
	return err
}
