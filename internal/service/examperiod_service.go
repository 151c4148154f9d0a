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

type examPeriodRepository interface {
	List(ctx context.Context) ([]models.ExamPeriod, error)
	FindByID(ctx context.Context, id int64) (*models.ExamPeriod, error)
	Create(ctx context.Context, period *models.ExamPeriod) error
	Update(ctx context.Context, period *models.ExamPeriod) error
	Delete(ctx context.Context, id int64) error
	FindTemplateForDate(ctx context.Context, date time.Time) (*models.ExamPeriod, error)
	ExistsForDateAndCollege(ctx context.Context, date time.Time, collegeID string) (bool, error)
	DeleteByDateAndCollegeID(ctx context.Context, date time.Time, collegeID string) (int64, error)
	DeleteByDateAndCollegeName(ctx context.Context, date time.Time, collegeName string) (int64, error)
}

type collegeLookup interface {
	FindByID(ctx context.Context, id string) (*models.College, error)
	FindByName(ctx context.Context, name string) (*models.College, error)
}

// ExamPeriodRequest holds the payload for creating and updating exam periods.
type ExamPeriodRequest struct {
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`
	AcademicYear string    `json:"academic_year" validate:"required"`
	Category     string    `json:"exam_category" validate:"required"`
	TermID       int64     `json:"term_id" validate:"required"`
	DepartmentID *string   `json:"department_id"`
	CollegeID    *string   `json:"college_id"`
}

// ReconcileResult reports the total number of rows a bulk update touched.
type ReconcileResult struct {
	UpdatedCount int64 `json:"updated_count"`
}

// ExamPeriodService handles exam period use-cases, including the bulk
// reconciliation used by the scheduling calendar.
type ExamPeriodService struct {
	repo      examPeriodRepository
	colleges  collegeLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamPeriodService constructs the exam period service.
func NewExamPeriodService(repo examPeriodRepository, colleges collegeLookup, validate *validator.Validate, logger *zap.Logger) *ExamPeriodService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamPeriodService{repo: repo, colleges: colleges, validator: validate, logger: logger}
}

// List returns all exam periods, newest first.
func (s *ExamPeriodService) List(ctx context.Context) ([]models.ExamPeriod, error) {
	periods, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exam periods")
	}
	return periods, nil
}

// Get returns one exam period.
func (s *ExamPeriodService) Get(ctx context.Context, id int64) (*models.ExamPeriod, error) {
	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam period")
	}
	return period, nil
}

// Create registers an exam period.
func (s *ExamPeriodService) Create(ctx context.Context, req ExamPeriodRequest) (*models.ExamPeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam period payload")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must not precede start date")
	}
	period := &models.ExamPeriod{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		AcademicYear: req.AcademicYear,
		Category:     req.Category,
		TermID:       req.TermID,
		DepartmentID: req.DepartmentID,
		CollegeID:    req.CollegeID,
	}
	if err := s.repo.Create(ctx, period); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam period")
	}
	return s.Get(ctx, period.ID)
}

// Update persists changes to an exam period.
func (s *ExamPeriodService) Update(ctx context.Context, id int64, req ExamPeriodRequest) (*models.ExamPeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam period payload")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must not precede start date")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	period := &models.ExamPeriod{
		ID:           id,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		AcademicYear: req.AcademicYear,
		Category:     req.Category,
		TermID:       req.TermID,
		DepartmentID: req.DepartmentID,
		CollegeID:    req.CollegeID,
	}
	if err := s.repo.Update(ctx, period); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update exam period")
	}
	return s.Get(ctx, id)
}

// Delete removes an exam period.
func (s *ExamPeriodService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exam period")
	}
	return nil
}

// Reconcile applies a batch of calendar instructions. Instructions run
// independently: a malformed or inapplicable entry is skipped, never failing
// the batch. The returned count totals rows created and removed.
func (s *ExamPeriodService) Reconcile(ctx context.Context, instructions []models.ReconcileInstruction) (*ReconcileResult, error) {
	var updated int64
	for _, instruction := range instructions {
		date, err := time.Parse("2006-01-02", instruction.StartDate)
		if err != nil {
			s.logger.Warn("skipping reconcile entry with bad date", zap.String("start_date", instruction.StartDate))
			continue
		}
		// Removal and assignment are mutually exclusive: an instruction
		// carrying both fields only removes.
		if instruction.CollegeToRemove != "" {
			n, err := s.removeCollegePeriods(ctx, date, instruction.CollegeToRemove)
			if err != nil {
				return nil, err
			}
			updated += n
		} else if instruction.CollegeName != "" {
			n, err := s.assignCollegePeriod(ctx, date, instruction.CollegeName)
			if err != nil {
				return nil, err
			}
			updated += n
		}
	}
	return &ReconcileResult{UpdatedCount: updated}, nil
}

func (s *ExamPeriodService) removeCollegePeriods(ctx context.Context, date time.Time, college string) (int64, error) {
	n, err := s.repo.DeleteByDateAndCollegeID(ctx, date, college)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove exam periods")
	}
	if n > 0 {
		return n, nil
	}
	// The removal target may be a display name rather than a college code.
	n, err = s.repo.DeleteByDateAndCollegeName(ctx, date, college)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove exam periods")
	}
	return n, nil
}

func (s *ExamPeriodService) assignCollegePeriod(ctx context.Context, date time.Time, college string) (int64, error) {
	resolved, err := s.colleges.FindByID(ctx, college)
	if err == sql.ErrNoRows {
		resolved, err = s.colleges.FindByName(ctx, college)
	}
	if err == sql.ErrNoRows {
		s.logger.Warn("skipping reconcile entry for unknown college", zap.String("college", college))
		return 0, nil
	}
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve college")
	}

	exists, err := s.repo.ExistsForDateAndCollege(ctx, date, resolved.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check exam period")
	}
	if exists {
		return 0, nil
	}

	template, err := s.repo.FindTemplateForDate(ctx, date)
	if err == sql.ErrNoRows {
		s.logger.Warn("skipping reconcile entry with no template period", zap.Time("start_date", date))
		return 0, nil
	}
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template period")
	}

	period := &models.ExamPeriod{
		StartDate:    template.StartDate,
		EndDate:      template.EndDate,
		AcademicYear: template.AcademicYear,
		Category:     template.Category,
		TermID:       template.TermID,
		DepartmentID: template.DepartmentID,
		CollegeID:    &resolved.ID,
	}
	if err := s.repo.Create(ctx, period); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam period")
	}
	return 1, nil
}
