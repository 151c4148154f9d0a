package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// CourseRepository handles persistence for courses and their instructor
// assignments. Writes that touch both tables run in one transaction so a
// course and its course_users rows never diverge.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository instantiates a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns all courses with term names resolved.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `
		SELECT c.course_id, c.course_name, c.term_id, t.term_name
		FROM courses c
		LEFT JOIN terms t ON t.term_id = c.term_id
		ORDER BY c.course_id`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID loads a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `
		SELECT c.course_id, c.course_name, c.term_id, t.term_name
		FROM courses c
		LEFT JOIN terms t ON t.term_id = c.term_id
		WHERE c.course_id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Save upserts the course row and replaces its instructor assignments
// atomically. Either both writes land or neither does.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course, assignments []models.CourseUser) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save course tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const upsert = `
		INSERT INTO courses (course_id, course_name, term_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (course_id) DO UPDATE SET course_name = EXCLUDED.course_name, term_id = EXCLUDED.term_id`
	if _, err = tx.ExecContext(ctx, upsert, course.ID, course.Name, course.TermID); err != nil {
		return fmt.Errorf("upsert course: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM course_users WHERE course_id = $1`, course.ID); err != nil {
		return fmt.Errorf("clear course users: %w", err)
	}

	const insertUser = `INSERT INTO course_users (course_id, user_id, course_name, is_leader) VALUES ($1, $2, $3, $4)`
	for _, cu := range assignments {
		if _, err = tx.ExecContext(ctx, insertUser, cu.CourseID, cu.UserID, cu.CourseName, cu.IsLeader); err != nil {
			return fmt.Errorf("insert course user %s/%d: %w", cu.CourseID, cu.UserID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save course tx: %w", err)
	}
	return nil
}

// Delete removes the course together with its instructor assignments.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM course_users WHERE course_id = $1`, id); err != nil {
		return fmt.Errorf("delete course users: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM courses WHERE course_id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete course tx: %w", err)
	}
	return nil
}

// ListAssignments returns the course_users rows of one course, with user
// names resolved for display.
func (r *CourseRepository) ListAssignments(ctx context.Context, courseID string) ([]models.CourseUser, error) {
	const query = `
		SELECT cu.course_id, cu.user_id, cu.course_name, cu.is_leader, u.first_name, u.last_name
		FROM course_users cu
		JOIN users u ON u.user_id = cu.user_id
		WHERE cu.course_id = $1
		ORDER BY cu.user_id`
	var assignments []models.CourseUser
	if err := r.db.SelectContext(ctx, &assignments, query, courseID); err != nil {
		return nil, fmt.Errorf("list course assignments: %w", err)
	}
	return assignments, nil
}

// ListAllAssignments returns every course_users row.
func (r *CourseRepository) ListAllAssignments(ctx context.Context) ([]models.CourseUser, error) {
	const query = `
		SELECT cu.course_id, cu.user_id, cu.course_name, cu.is_leader, u.first_name, u.last_name
		FROM course_users cu
		JOIN users u ON u.user_id = cu.user_id
		ORDER BY cu.course_id, cu.user_id`
	var assignments []models.CourseUser
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list course assignments: %w", err)
	}
	return assignments, nil
}

// FindAssignment loads one (course, user) pair.
func (r *CourseRepository) FindAssignment(ctx context.Context, courseID string, userID int64) (*models.CourseUser, error) {
	const query = `
		SELECT cu.course_id, cu.user_id, cu.course_name, cu.is_leader, u.first_name, u.last_name
		FROM course_users cu
		JOIN users u ON u.user_id = cu.user_id
		WHERE cu.course_id = $1 AND cu.user_id = $2`
	var assignment models.CourseUser
	if err := r.db.GetContext(ctx, &assignment, query, courseID, userID); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CreateAssignment inserts one course_users row. The (course, user) pair is
// unique; duplicates surface as a constraint violation.
func (r *CourseRepository) CreateAssignment(ctx context.Context, cu *models.CourseUser) error {
	const query = `INSERT INTO course_users (course_id, user_id, course_name, is_leader) VALUES (:course_id, :user_id, :course_name, :is_leader)`
	if _, err := r.db.NamedExecContext(ctx, query, cu); err != nil {
		return fmt.Errorf("create course assignment: %w", err)
	}
	return nil
}

// UpdateAssignment modifies the leader flag and cached course name of a pair.
func (r *CourseRepository) UpdateAssignment(ctx context.Context, cu *models.CourseUser) error {
	const query = `UPDATE course_users SET course_name = :course_name, is_leader = :is_leader WHERE course_id = :course_id AND user_id = :user_id`
	if _, err := r.db.NamedExecContext(ctx, query, cu); err != nil {
		return fmt.Errorf("update course assignment: %w", err)
	}
	return nil
}

// DeleteAssignment removes one (course, user) pair.
func (r *CourseRepository) DeleteAssignment(ctx context.Context, courseID string, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_users WHERE course_id = $1 AND user_id = $2`, courseID, userID); err != nil {
		return fmt.Errorf("delete course assignment: %w", err)
	}
	return nil
}
