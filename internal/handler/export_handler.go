package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	"github.com/examsync/examsync-api/pkg/config"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// ExportHandler serves exam schedule downloads. The endpoint is disabled
// unless ENABLE_EXPORTS is set.
type ExportHandler struct {
	exports *service.ExportService
	cfg     config.ExportsConfig
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService, cfg config.ExportsConfig) *ExportHandler {
	return &ExportHandler{exports: exports, cfg: cfg}
}

// ExamSchedule godoc
// @Summary Download the exam schedule
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param room_id query string false "Filter by room"
// @Param exam_date query string false "Filter by exam date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /exports/exam-schedule [get]
func (h *ExportHandler) ExamSchedule(c *gin.Context) {
	if !h.cfg.Enabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are not enabled"))
		return
	}
	filter := models.ExamDetailFilter{
		RoomID:   c.Query("room_id"),
		ExamDate: c.Query("exam_date"),
	}

	var (
		payload     []byte
		filename    string
		contentType string
		err         error
	)
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		contentType = "text/csv"
		payload, filename, err = h.exports.ExamScheduleCSV(c.Request.Context(), filter)
	case "pdf":
		contentType = "application/pdf"
		payload, filename, err = h.exports.ExamSchedulePDF(c.Request.Context(), filter)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
