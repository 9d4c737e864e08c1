package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/google/uuid"
)

var ErrSelfReport = errors.New("cannot report your own photo")

// defaultReportReason is the fixed reason recorded for user reports; triage
// happens in the moderation tool, not at submission time.
const defaultReportReason = "Inappropriate"

type ReportService struct {
	repo         repository.ReportRepository
	photoRepo    repository.PhotoRepository
	photoService *PhotoService
	emailService *EmailService
	rateLimit    *RateLimitService
}

func NewReportService(
	repo repository.ReportRepository,
	photoRepo repository.PhotoRepository,
	photoService *PhotoService,
	emailService *EmailService,
	rateLimit *RateLimitService,
) *ReportService {
	return &ReportService{
		repo:         repo,
		photoRepo:    photoRepo,
		photoService: photoService,
		emailService: emailService,
		rateLimit:    rateLimit,
	}
}

// ReportPhoto files a report against a photo. While a reporter already has an
// OPEN report on the same photo, the existing report is returned unchanged:
// repeat submissions must not pile up duplicate open reports.
func (s *ReportService) ReportPhoto(reporterID, photoID string) (*model.Report, error) {
	err := s.rateLimit.Require(UserKey(reporterID), "report:create", 5, time.Minute)
	if err != nil {
		return nil, err
	}

	err = s.photoService.AssertViewable(photoID, reporterID)
	if err != nil {
		return nil, err
	}

	photo, err := s.photoRepo.ByID(photoID)
	if err != nil {
		return nil, err
	}
	if photo.AuthorID == reporterID {
		return nil, ErrSelfReport
	}

	existing, err := s.repo.OpenByReporterAndPhoto(reporterID, photoID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrReportNotFound) {
		return nil, err
	}

	report := &model.Report{
		ID:         uuid.New().String(),
		ReporterID: reporterID,
		TargetType: model.ReportTargetPhoto,
		PhotoID:    photoID,
		Reason:     defaultReportReason,
		Status:     model.ReportStatusOpen,
		CreatedAt:  time.Now(),
	}

	err = s.repo.Create(report)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	// Notification failures never fail the report itself.
	err = s.emailService.SendReportNotification(report)
	if err != nil {
		slog.Error("failed to send report notification", "error", err, "report_id", report.ID)
	}

	return report, nil
}
