package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// ExamDetailRepository handles persistence for scheduled exam sittings.
type ExamDetailRepository struct {
	db *sqlx.DB
}

// NewExamDetailRepository instantiates an exam detail repository.
func NewExamDetailRepository(db *sqlx.DB) *ExamDetailRepository {
	return &ExamDetailRepository{db: db}
}

const examDetailSelect = `
	SELECT ed.examdetails_id, ed.course_id, ed.program_id, ed.room_id, ed.modality_id,
	       ed.proctor_id, ed.examperiod_id, ed.exam_duration, ed.exam_start_time,
	       ed.exam_end_time, ed.proctor_timein, ed.proctor_timeout, ed.section_name,
	       ed.academic_year, ed.semester, ed.exam_category, ed.exam_period, ed.exam_date,
	       ed.college_name, ed.building_name, ed.instructor_id,
	       r.room_name,
	       TRIM(CONCAT(u.first_name, ' ', u.last_name)) AS proctor_name
	FROM exam_details ed
	LEFT JOIN rooms r ON r.room_id = ed.room_id
	LEFT JOIN users u ON u.user_id = ed.proctor_id`

// List returns exam details matching the filter, newest first.
func (r *ExamDetailRepository) List(ctx context.Context, filter models.ExamDetailFilter) ([]models.ExamDetail, error) {
	query := examDetailSelect
	var (
		conds []string
		args  []interface{}
	)
	if filter.RoomID != "" {
		args = append(args, filter.RoomID)
		conds = append(conds, "ed.room_id = $"+strconv.Itoa(len(args)))
	}
	if filter.ExamDate != "" {
		args = append(args, filter.ExamDate)
		conds = append(conds, "ed.exam_date = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY ed.examdetails_id DESC" + limitOffset(filter.Page, filter.PageSize)

	var details []models.ExamDetail
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, fmt.Errorf("list exam details: %w", err)
	}
	return details, nil
}

// FindByID loads one exam detail by identifier.
func (r *ExamDetailRepository) FindByID(ctx context.Context, id int64) (*models.ExamDetail, error) {
	var detail models.ExamDetail
	if err := r.db.GetContext(ctx, &detail, examDetailSelect+" WHERE ed.examdetails_id = $1", id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts an exam detail and fills in the generated identifier.
func (r *ExamDetailRepository) Create(ctx context.Context, detail *models.ExamDetail) error {
	const query = `
		INSERT INTO exam_details (
			course_id, program_id, room_id, modality_id, proctor_id, examperiod_id,
			exam_duration, exam_start_time, exam_end_time, proctor_timein, proctor_timeout,
			section_name, academic_year, semester, exam_category, exam_period, exam_date,
			college_name, building_name, instructor_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING examdetails_id`
	if err := r.db.GetContext(ctx, &detail.ID, query,
		detail.CourseID, detail.ProgramID, detail.RoomID, detail.ModalityID,
		detail.ProctorID, detail.ExamPeriodID, detail.Duration, detail.StartTime,
		detail.EndTime, detail.ProctorTimeIn, detail.ProctorTimeOut, detail.SectionName,
		detail.AcademicYear, detail.Semester, detail.Category, detail.PeriodLabel,
		detail.ExamDate, detail.CollegeName, detail.BuildingName, detail.InstructorID); err != nil {
		return fmt.Errorf("create exam detail: %w", err)
	}
	return nil
}

// Update persists changes to an exam detail.
func (r *ExamDetailRepository) Update(ctx context.Context, detail *models.ExamDetail) error {
	const query = `
		UPDATE exam_details
		SET course_id = :course_id, program_id = :program_id, room_id = :room_id,
		    modality_id = :modality_id, proctor_id = :proctor_id, examperiod_id = :examperiod_id,
		    exam_duration = :exam_duration, exam_start_time = :exam_start_time,
		    exam_end_time = :exam_end_time, proctor_timein = :proctor_timein,
		    proctor_timeout = :proctor_timeout, section_name = :section_name,
		    academic_year = :academic_year, semester = :semester, exam_category = :exam_category,
		    exam_period = :exam_period, exam_date = :exam_date, college_name = :college_name,
		    building_name = :building_name, instructor_id = :instructor_id
		WHERE examdetails_id = :examdetails_id`
	if _, err := r.db.NamedExecContext(ctx, query, detail); err != nil {
		return fmt.Errorf("update exam detail: %w", err)
	}
	return nil
}

// Delete removes an exam detail.
func (r *ExamDetailRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM exam_details WHERE examdetails_id = $1`, id); err != nil {
		return fmt.Errorf("delete exam detail: %w", err)
	}
	return nil
}
