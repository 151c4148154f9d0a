package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// SectionRepository handles persistence for class sections.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository instantiates a section repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

const sectionSelect = `
	SELECT s.section_id, s.course_id, s.program_id, s.section_name, s.number_of_students,
	       s.year_level, s.term_id, s.user_id,
	       c.course_name, p.program_name, t.term_name
	FROM sections s
	LEFT JOIN courses c ON c.course_id = s.course_id
	LEFT JOIN programs p ON p.program_id = s.program_id
	LEFT JOIN terms t ON t.term_id = s.term_id`

// List returns sections matching the filter, newest registered last.
func (r *SectionRepository) List(ctx context.Context, filter models.SectionFilter) ([]models.Section, error) {
	query := sectionSelect
	var (
		conds []string
		args  []interface{}
	)
	if filter.CourseID != "" {
		args = append(args, filter.CourseID)
		conds = append(conds, "s.course_id = $"+strconv.Itoa(len(args)))
	}
	if filter.ProgramID != "" {
		args = append(args, filter.ProgramID)
		conds = append(conds, "s.program_id = $"+strconv.Itoa(len(args)))
	}
	if filter.TermID != nil {
		args = append(args, *filter.TermID)
		conds = append(conds, "s.term_id = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY s.section_id" + limitOffset(filter.Page, filter.PageSize)

	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// FindByID loads one section by identifier.
func (r *SectionRepository) FindByID(ctx context.Context, id int64) (*models.Section, error) {
	var section models.Section
	if err := r.db.GetContext(ctx, &section, sectionSelect+" WHERE s.section_id = $1", id); err != nil {
		return nil, err
	}
	return &section, nil
}

// Create inserts a section and fills in the generated identifier.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	const query = `
		INSERT INTO sections (course_id, program_id, section_name, number_of_students, year_level, term_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING section_id`
	if err := r.db.GetContext(ctx, &section.ID, query,
		section.CourseID, section.ProgramID, section.Name, section.Capacity,
		section.YearLevel, section.TermID, section.UserID); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}

// Update persists changes to a section.
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	const query = `
		UPDATE sections
		SET course_id = :course_id, program_id = :program_id, section_name = :section_name,
		    number_of_students = :number_of_students, year_level = :year_level,
		    term_id = :term_id, user_id = :user_id
		WHERE section_id = :section_id`
	if _, err := r.db.NamedExecContext(ctx, query, section); err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return nil
}

// Delete removes a section.
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE section_id = $1`, id); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}
