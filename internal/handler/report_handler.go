package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlzProject/backend/internal/response"
	"github.com/AlzProject/backend/internal/service"
)

// ReportHandler handles read-only score projections.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// AttemptScoreReport godoc
// GET /api/v1/reports/attempts/:id/score
// Recomputes the attempt's total from its responses at read time.
func (h *ReportHandler) AttemptScoreReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.reportService.AttemptScoreReport(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}
