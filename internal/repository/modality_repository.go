package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/examsync/examsync-api/internal/models"
)

// ModalityRepository handles persistence for exam modalities. Candidate rooms
// live in a text[] column, so inserts and updates bind through pq.Array.
type ModalityRepository struct {
	db *sqlx.DB
}

// NewModalityRepository instantiates a modality repository.
func NewModalityRepository(db *sqlx.DB) *ModalityRepository {
	return &ModalityRepository{db: db}
}

const modalitySelect = `
	SELECT modality_id, modality_type, room_type, modality_remarks, course_id, program_id,
	       room_id, user_id, section_name, possible_rooms, created_at
	FROM modalities`

// List returns modalities matching the filter, newest first.
func (r *ModalityRepository) List(ctx context.Context, filter models.ModalityFilter) ([]models.Modality, error) {
	query := modalitySelect
	var (
		conds []string
		args  []interface{}
	)
	if filter.CourseID != "" {
		args = append(args, filter.CourseID)
		conds = append(conds, "course_id = $"+strconv.Itoa(len(args)))
	}
	if filter.ProgramID != "" {
		args = append(args, filter.ProgramID)
		conds = append(conds, "program_id = $"+strconv.Itoa(len(args)))
	}
	if filter.SectionName != "" {
		args = append(args, filter.SectionName)
		conds = append(conds, "section_name = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, "modality_type = $"+strconv.Itoa(len(args)))
	}
	if filter.RoomType != "" {
		args = append(args, filter.RoomType)
		conds = append(conds, "room_type = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY modality_id DESC" + limitOffset(filter.Page, filter.PageSize)

	var modalities []models.Modality
	if err := r.db.SelectContext(ctx, &modalities, query, args...); err != nil {
		return nil, fmt.Errorf("list modalities: %w", err)
	}
	return modalities, nil
}

// FindByID loads one modality by identifier.
func (r *ModalityRepository) FindByID(ctx context.Context, id int64) (*models.Modality, error) {
	var modality models.Modality
	if err := r.db.GetContext(ctx, &modality, modalitySelect+" WHERE modality_id = $1", id); err != nil {
		return nil, err
	}
	return &modality, nil
}

// Create inserts a modality and fills in the generated identifier.
func (r *ModalityRepository) Create(ctx context.Context, modality *models.Modality) error {
	const query = `
		INSERT INTO modalities (modality_type, room_type, modality_remarks, course_id, program_id,
		                        room_id, user_id, section_name, possible_rooms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING modality_id`
	if err := r.db.GetContext(ctx, &modality.ID, query,
		modality.Type, modality.RoomType, modality.Remarks, modality.CourseID,
		modality.ProgramID, modality.RoomID, modality.UserID, modality.SectionName,
		pq.Array(modality.PossibleRooms)); err != nil {
		return fmt.Errorf("create modality: %w", err)
	}
	return nil
}

// Update persists changes to a modality.
func (r *ModalityRepository) Update(ctx context.Context, modality *models.Modality) error {
	const query = `
		UPDATE modalities
		SET modality_type = $1, room_type = $2, modality_remarks = $3, course_id = $4,
		    program_id = $5, room_id = $6, user_id = $7, section_name = $8, possible_rooms = $9
		WHERE modality_id = $10`
	if _, err := r.db.ExecContext(ctx, query,
		modality.Type, modality.RoomType, modality.Remarks, modality.CourseID,
		modality.ProgramID, modality.RoomID, modality.UserID, modality.SectionName,
		pq.Array(modality.PossibleRooms), modality.ID); err != nil {
		return fmt.Errorf("update modality: %w", err)
	}
	return nil
}

// Delete removes a modality.
func (r *ModalityRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM modalities WHERE modality_id = $1`, id); err != nil {
		return fmt.Errorf("delete modality: %w", err)
	}
	return nil
}
