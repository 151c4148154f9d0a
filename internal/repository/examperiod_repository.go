package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// ExamPeriodRepository handles persistence for exam periods, including the
// date-scoped lookups the bulk reconciliation flow relies on.
type ExamPeriodRepository struct {
	db *sqlx.DB
}

// NewExamPeriodRepository instantiates an exam period repository.
func NewExamPeriodRepository(db *sqlx.DB) *ExamPeriodRepository {
	return &ExamPeriodRepository{db: db}
}

const examPeriodSelect = `
	SELECT ep.examperiod_id, ep.start_date, ep.end_date, ep.academic_year, ep.exam_category,
	       ep.term_id, ep.department_id, ep.college_id,
	       t.term_name, d.department_name, c.college_name
	FROM exam_periods ep
	LEFT JOIN terms t ON t.term_id = ep.term_id
	LEFT JOIN departments d ON d.department_id = ep.department_id
	LEFT JOIN colleges c ON c.college_id = ep.college_id`

// List returns all exam periods, newest first.
func (r *ExamPeriodRepository) List(ctx context.Context) ([]models.ExamPeriod, error) {
	var periods []models.ExamPeriod
	if err := r.db.SelectContext(ctx, &periods, examPeriodSelect+" ORDER BY ep.examperiod_id DESC"); err != nil {
		return nil, fmt.Errorf("list exam periods: %w", err)
	}
	return periods, nil
}

// FindByID loads one exam period by identifier.
func (r *ExamPeriodRepository) FindByID(ctx context.Context, id int64) (*models.ExamPeriod, error) {
	var period models.ExamPeriod
	if err := r.db.GetContext(ctx, &period, examPeriodSelect+" WHERE ep.examperiod_id = $1", id); err != nil {
		return nil, err
	}
	return &period, nil
}

// Create inserts an exam period and fills in the generated identifier.
func (r *ExamPeriodRepository) Create(ctx context.Context, period *models.ExamPeriod) error {
	const query = `
		INSERT INTO exam_periods (start_date, end_date, academic_year, exam_category, term_id, department_id, college_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING examperiod_id`
	if err := r.db.GetContext(ctx, &period.ID, query,
		period.StartDate, period.EndDate, period.AcademicYear, period.Category,
		period.TermID, period.DepartmentID, period.CollegeID); err != nil {
		return fmt.Errorf("create exam period: %w", err)
	}
	return nil
}

// Update persists changes to an exam period.
func (r *ExamPeriodRepository) Update(ctx context.Context, period *models.ExamPeriod) error {
	const query = `
		UPDATE exam_periods
		SET start_date = :start_date, end_date = :end_date, academic_year = :academic_year,
		    exam_category = :exam_category, term_id = :term_id,
		    department_id = :department_id, college_id = :college_id
		WHERE examperiod_id = :examperiod_id`
	if _, err := r.db.NamedExecContext(ctx, query, period); err != nil {
		return fmt.Errorf("update exam period: %w", err)
	}
	return nil
}

// Delete removes an exam period.
func (r *ExamPeriodRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM exam_periods WHERE examperiod_id = $1`, id); err != nil {
		return fmt.Errorf("delete exam period: %w", err)
	}
	return nil
}

// FindTemplateForDate returns the oldest exam period starting on the given
// date. Reconciliation copies its window and term when assigning a college.
func (r *ExamPeriodRepository) FindTemplateForDate(ctx context.Context, date time.Time) (*models.ExamPeriod, error) {
	var period models.ExamPeriod
	if err := r.db.GetContext(ctx, &period,
		examPeriodSelect+" WHERE ep.start_date = $1 ORDER BY ep.examperiod_id LIMIT 1", date); err != nil {
		return nil, err
	}
	return &period, nil
}

// ExistsForDateAndCollege reports whether the college already has a period
// starting on the given date.
func (r *ExamPeriodRepository) ExistsForDateAndCollege(ctx context.Context, date time.Time, collegeID string) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS (SELECT 1 FROM exam_periods WHERE start_date = $1 AND college_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, date, collegeID); err != nil {
		return false, fmt.Errorf("check exam period exists: %w", err)
	}
	return exists, nil
}

// DeleteByDateAndCollegeID removes the college's periods starting on the
// given date and reports how many rows went away.
func (r *ExamPeriodRepository) DeleteByDateAndCollegeID(ctx context.Context, date time.Time, collegeID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM exam_periods WHERE start_date = $1 AND college_id = $2`, date, collegeID)
	if err != nil {
		return 0, fmt.Errorf("delete exam periods by college: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete exam periods by college: %w", err)
	}
	return affected, nil
}

// DeleteByDateAndCollegeName removes periods on the date whose college
// matches by name. Used when the removal target is not a known identifier.
func (r *ExamPeriodRepository) DeleteByDateAndCollegeName(ctx context.Context, date time.Time, collegeName string) (int64, error) {
	const query = `
		DELETE FROM exam_periods
		WHERE start_date = $1
		  AND college_id IN (SELECT college_id FROM colleges WHERE college_name = $2)`
	res, err := r.db.ExecContext(ctx, query, date, collegeName)
	if err != nil {
		return 0, fmt.Errorf("delete exam periods by college name: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete exam periods by college name: %w", err)
	}
	return affected, nil
}
