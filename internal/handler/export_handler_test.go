package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	"github.com/examsync/examsync-api/pkg/config"
)

type examDetailListerMock struct {
	details []models.ExamDetail
}

func (m *examDetailListerMock) List(ctx context.Context, filter models.ExamDetailFilter) ([]models.ExamDetail, error) {
	return m.details, nil
}

func newExportHandlerFixture(enabled bool) *ExportHandler {
	lister := &examDetailListerMock{details: []models.ExamDetail{
		{ID: 1, CourseID: "CS101", RoomID: "RM-201", ExamDate: strPtrHandler("2026-05-04")},
	}}
	svc := service.NewExportService(lister, nil)
	return NewExportHandler(svc, config.ExportsConfig{Enabled: enabled})
}

func strPtrHandler(s string) *string { return &s }

func TestExportHandlerDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExportHandlerFixture(false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/exam-schedule", nil)

	handler.ExamSchedule(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportHandlerCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExportHandlerFixture(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/exam-schedule?format=csv", nil)

	handler.ExamSchedule(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "CS101")
}

func TestExportHandlerUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExportHandlerFixture(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/exam-schedule?format=xlsx", nil)

	handler.ExamSchedule(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
