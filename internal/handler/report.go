package handler

import (
	"net/http"

	"github.com/galaxyhq/galaxy/internal/ctxkeys"
	"github.com/galaxyhq/galaxy/internal/service"
)

type reportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *reportHandler {
	return &reportHandler{reportService: reportService}
}

// Report flags a photo for moderation. Reporting twice is a no-op that
// returns the existing open report.
func (h *reportHandler) Report(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	report, err := h.reportService.ReportPhoto(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":     report.ID,
		"status": report.Status,
	})
}
