package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/export"
)

type examDetailLister interface {
	List(ctx context.Context, filter models.ExamDetailFilter) ([]models.ExamDetail, error)
}

// ExportService renders exam schedules as downloadable CSV or PDF documents.
type ExportService struct {
	details examDetailLister
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(details examDetailLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		details: details,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

var examScheduleHeaders = []string{
	"Course", "Program", "Section", "Room", "Building", "Exam Date",
	"Start Time", "End Time", "Duration", "Proctor", "Category", "Academic Year",
}

// ExamScheduleCSV renders the filtered exam schedule as CSV bytes.
func (s *ExportService) ExamScheduleCSV(ctx context.Context, filter models.ExamDetailFilter) ([]byte, string, error) {
	dataset, err := s.buildDataset(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(*dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, exportFileName("csv"), nil
}

// ExamSchedulePDF renders the filtered exam schedule as PDF bytes.
func (s *ExportService) ExamSchedulePDF(ctx context.Context, filter models.ExamDetailFilter) ([]byte, string, error) {
	dataset, err := s.buildDataset(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.Render(*dataset, "Exam Schedule")
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, exportFileName("pdf"), nil
}

func (s *ExportService) buildDataset(ctx context.Context, filter models.ExamDetailFilter) (*export.Dataset, error) {
	details, err := s.details.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam details")
	}
	rows := make([]map[string]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, map[string]string{
			"Course":        d.CourseID,
			"Program":       d.ProgramID,
			"Section":       deref(d.SectionName),
			"Room":          deref(d.RoomName),
			"Building":      deref(d.BuildingName),
			"Exam Date":     deref(d.ExamDate),
			"Start Time":    formatClock(d.StartTime),
			"End Time":      formatClock(d.EndTime),
			"Duration":      deref(d.Duration),
			"Proctor":       deref(d.ProctorName),
			"Category":      deref(d.Category),
			"Academic Year": deref(d.AcademicYear),
		})
	}
	return &export.Dataset{Headers: examScheduleHeaders, Rows: rows}, nil
}

func exportFileName(ext string) string {
	return fmt.Sprintf("exam-schedule-%s.%s", time.Now().Format("20060102"), ext)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
