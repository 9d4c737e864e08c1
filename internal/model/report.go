package model

import (
	"time"
)

const (
	ReportStatusOpen     = "OPEN"
	ReportStatusResolved = "RESOLVED"

	ReportTargetPhoto = "PHOTO"
)

type Report struct {
	ID         string    `db:"id"`
	ReporterID string    `db:"reporter_id"`
	TargetType string    `db:"target_type"`
	PhotoID    string    `db:"photo_id"`
	Reason     string    `db:"reason"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}
