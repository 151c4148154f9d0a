package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// AvailabilityRepository handles persistence for proctor availability
// submissions.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository instantiates an availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

const availabilitySelect = `
	SELECT availability_id, day, time_slot, status, remarks, user_id
	FROM availabilities`

// List returns availability rows, optionally scoped to one user.
func (r *AvailabilityRepository) List(ctx context.Context, filter models.AvailabilityFilter) ([]models.Availability, error) {
	query := availabilitySelect
	var args []interface{}
	if filter.UserID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *filter.UserID)
	}
	query += " ORDER BY day, availability_id"

	var availabilities []models.Availability
	if err := r.db.SelectContext(ctx, &availabilities, query, args...); err != nil {
		return nil, fmt.Errorf("list availabilities: %w", err)
	}
	return availabilities, nil
}

// FindByID loads one availability row by identifier.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id int64) (*models.Availability, error) {
	var availability models.Availability
	if err := r.db.GetContext(ctx, &availability, availabilitySelect+" WHERE availability_id = $1", id); err != nil {
		return nil, err
	}
	return &availability, nil
}

// Create inserts one availability row and fills in the generated identifier.
func (r *AvailabilityRepository) Create(ctx context.Context, availability *models.Availability) error {
	const query = `
		INSERT INTO availabilities (day, time_slot, status, remarks, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING availability_id`
	if err := r.db.GetContext(ctx, &availability.ID, query,
		availability.Day, availability.TimeSlot, availability.Status,
		availability.Remarks, availability.UserID); err != nil {
		return fmt.Errorf("create availability: %w", err)
	}
	return nil
}

// CreateBatch inserts several availability rows in one transaction. A proctor
// submits a whole week at once; partial submissions are not useful.
func (r *AvailabilityRepository) CreateBatch(ctx context.Context, availabilities []models.Availability) ([]models.Availability, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create availabilities tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `
		INSERT INTO availabilities (day, time_slot, status, remarks, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING availability_id`
	for i := range availabilities {
		a := &availabilities[i]
		if err = tx.GetContext(ctx, &a.ID, query, a.Day, a.TimeSlot, a.Status, a.Remarks, a.UserID); err != nil {
			return nil, fmt.Errorf("create availability batch: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create availabilities tx: %w", err)
	}
	return availabilities, nil
}

// Update persists changes to an availability row.
func (r *AvailabilityRepository) Update(ctx context.Context, availability *models.Availability) error {
	const query = `
		UPDATE availabilities
		SET day = :day, time_slot = :time_slot, status = :status, remarks = :remarks, user_id = :user_id
		WHERE availability_id = :availability_id`
	if _, err := r.db.NamedExecContext(ctx, query, availability); err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	return nil
}

// Delete removes an availability row.
func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM availabilities WHERE availability_id = $1`, id); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return nil
}
