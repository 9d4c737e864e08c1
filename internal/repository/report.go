package repository

import (
	"database/sql"
	"errors"

	"github.com/galaxyhq/galaxy/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository interface {
	Create(report *model.Report) error
	OpenByReporterAndPhoto(reporterID, photoID string) (*model.Report, error)
	Resolve(id string) error
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.Report) error {
	query := `INSERT INTO reports (id, reporter_id, target_type, photo_id, reason, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		report.ID,
		report.ReporterID,
		report.TargetType,
		report.PhotoID,
		report.Reason,
		report.Status,
		report.CreatedAt,
	)

	return err
}

func (r *reportRepository) OpenByReporterAndPhoto(reporterID, photoID string) (*model.Report, error) {
	report := &model.Report{}
	query := `SELECT * FROM reports
	          WHERE reporter_id = $1 AND photo_id = $2 AND target_type = $3 AND status = $4
	          LIMIT 1`

	err := r.db.Get(report, query, reporterID, photoID, model.ReportTargetPhoto, model.ReportStatusOpen)
	if err == sql.ErrNoRows {
		return nil, ErrReportNotFound
	}

	return report, err
}

// Resolve marks an open report as handled. Resolving an already resolved or
// unknown report returns ErrReportNotFound.
func (r *reportRepository) Resolve(id string) error {
	query := `UPDATE reports SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.db.Exec(query, model.ReportStatusResolved, id, model.ReportStatusOpen)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReportNotFound
	}

	return nil
}
