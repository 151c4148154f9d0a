package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
)

type mockExamDetailLister struct {
	details    []models.ExamDetail
	lastFilter models.ExamDetailFilter
}

func (m *mockExamDetailLister) List(ctx context.Context, filter models.ExamDetailFilter) ([]models.ExamDetail, error) {
	m.lastFilter = filter
	return m.details, nil
}

func TestExportServiceExamScheduleCSV(t *testing.T) {
	room := "Room 101"
	date := "2025-10-06"
	lister := &mockExamDetailLister{details: []models.ExamDetail{
		{ID: 1, CourseID: "CS101", ProgramID: "BSCS", RoomID: "R101", RoomName: &room, ExamDate: &date},
	}}
	svc := NewExportService(lister, zap.NewNop())

	payload, name, err := svc.ExamScheduleCSV(context.Background(), models.ExamDetailFilter{RoomID: "R101"})
	require.NoError(t, err)
	assert.Equal(t, "R101", lister.lastFilter.RoomID)
	assert.Contains(t, name, ".csv")

	lines := bytes.Split(bytes.TrimSpace(payload), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "Course")
	assert.Contains(t, string(lines[1]), "CS101")
	assert.Contains(t, string(lines[1]), "Room 101")
}

func TestExportServiceExamSchedulePDF(t *testing.T) {
	lister := &mockExamDetailLister{}
	svc := NewExportService(lister, zap.NewNop())

	payload, name, err := svc.ExamSchedulePDF(context.Background(), models.ExamDetailFilter{})
	require.NoError(t, err)
	assert.Contains(t, name, ".pdf")
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}
