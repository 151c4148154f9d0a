package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// CollegeRepository handles persistence for colleges.
type CollegeRepository struct {
	db *sqlx.DB
}

// NewCollegeRepository instantiates a college repository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// List returns all colleges ordered by identifier.
func (r *CollegeRepository) List(ctx context.Context) ([]models.College, error) {
	const query = `SELECT college_id, college_name FROM colleges ORDER BY college_id`
	var colleges []models.College
	if err := r.db.SelectContext(ctx, &colleges, query); err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// FindByID loads a college by identifier.
func (r *CollegeRepository) FindByID(ctx context.Context, id string) (*models.College, error) {
	const query = `SELECT college_id, college_name FROM colleges WHERE college_id = $1`
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, id); err != nil {
		return nil, err
	}
	return &college, nil
}

// FindByName loads a college by display name. The reconciliation endpoint
// falls back to this when the identifier lookup misses.
func (r *CollegeRepository) FindByName(ctx context.Context, name string) (*models.College, error) {
	const query = `SELECT college_id, college_name FROM colleges WHERE college_name = $1 LIMIT 1`
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, name); err != nil {
		return nil, err
	}
	return &college, nil
}

// Create inserts a new college.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	const query = `INSERT INTO colleges (college_id, college_name) VALUES (:college_id, :college_name)`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return fmt.Errorf("create college: %w", err)
	}
	return nil
}

// Update modifies an existing college.
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	const query = `UPDATE colleges SET college_name = :college_name WHERE college_id = :college_id`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return fmt.Errorf("update college: %w", err)
	}
	return nil
}

// Delete removes a college permanently.
func (r *CollegeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM colleges WHERE college_id = $1`, id); err != nil {
		return fmt.Errorf("delete college: %w", err)
	}
	return nil
}
