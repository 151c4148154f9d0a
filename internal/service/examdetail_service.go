package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type examDetailRepository interface {
	List(ctx context.Context, filter models.ExamDetailFilter) ([]models.ExamDetail, error)
	FindByID(ctx context.Context, id int64) (*models.ExamDetail, error)
	Create(ctx context.Context, detail *models.ExamDetail) error
	Update(ctx context.Context, detail *models.ExamDetail) error
	Delete(ctx context.Context, id int64) error
}

// ExamDetailRequest holds the payload for creating and updating exam
// sittings. Optional fields stay nil when the sitting is still being drafted.
type ExamDetailRequest struct {
	CourseID       string     `json:"course_id" validate:"required"`
	ProgramID      string     `json:"program_id" validate:"required"`
	RoomID         string     `json:"room_id" validate:"required"`
	ModalityID     int64      `json:"modality_id" validate:"required"`
	ProctorID      *int64     `json:"proctor_id"`
	ExamPeriodID   int64      `json:"examperiod_id" validate:"required"`
	Duration       *string    `json:"exam_duration"`
	StartTime      *time.Time `json:"exam_start_time"`
	EndTime        *time.Time `json:"exam_end_time"`
	ProctorTimeIn  *time.Time `json:"proctor_timein"`
	ProctorTimeOut *time.Time `json:"proctor_timeout"`
	SectionName    *string    `json:"section_name"`
	AcademicYear   *string    `json:"academic_year"`
	Semester       *string    `json:"semester"`
	Category       *string    `json:"exam_category"`
	PeriodLabel    *string    `json:"exam_period"`
	ExamDate       *string    `json:"exam_date"`
	CollegeName    *string    `json:"college_name"`
	BuildingName   *string    `json:"building_name"`
	InstructorID   *int64     `json:"instructor_id"`
}

// ExamDetailService handles exam sitting use-cases.
type ExamDetailService struct {
	repo      examDetailRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamDetailService constructs the exam detail service.
func NewExamDetailService(repo examDetailRepository, validate *validator.Validate, logger *zap.Logger) *ExamDetailService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamDetailService{repo: repo, validator: validate, logger: logger}
}

// List returns exam sittings matching the filter.
func (s *ExamDetailService) List(ctx context.Context, filter models.ExamDetailFilter) ([]models.ExamDetail, error) {
	details, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exam details")
	}
	return details, nil
}

// Get returns one exam sitting.
func (s *ExamDetailService) Get(ctx context.Context, id int64) (*models.ExamDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam detail not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam detail")
	}
	return detail, nil
}

// Create schedules an exam sitting.
func (s *ExamDetailService) Create(ctx context.Context, req ExamDetailRequest) (*models.ExamDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam detail payload")
	}
	detail := examDetailFromRequest(0, req)
	if err := s.repo.Create(ctx, detail); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam detail")
	}
	return s.Get(ctx, detail.ID)
}

// Update persists changes to an exam sitting.
func (s *ExamDetailService) Update(ctx context.Context, id int64, req ExamDetailRequest) (*models.ExamDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam detail payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	detail := examDetailFromRequest(id, req)
	if err := s.repo.Update(ctx, detail); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update exam detail")
	}
	return s.Get(ctx, id)
}

// Delete removes an exam sitting.
func (s *ExamDetailService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exam detail")
	}
	return nil
}

func examDetailFromRequest(id int64, req ExamDetailRequest) *models.ExamDetail {
	return &models.ExamDetail{
		ID:             id,
		CourseID:       req.CourseID,
		ProgramID:      req.ProgramID,
		RoomID:         req.RoomID,
		ModalityID:     req.ModalityID,
		ProctorID:      req.ProctorID,
		ExamPeriodID:   req.ExamPeriodID,
		Duration:       req.Duration,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ProctorTimeIn:  req.ProctorTimeIn,
		ProctorTimeOut: req.ProctorTimeOut,
		SectionName:    req.SectionName,
		AcademicYear:   req.AcademicYear,
		Semester:       req.Semester,
		Category:       req.Category,
		PeriodLabel:    req.PeriodLabel,
		ExamDate:       req.ExamDate,
		CollegeName:    req.CollegeName,
		BuildingName:   req.BuildingName,
		InstructorID:   req.InstructorID,
	}
}
