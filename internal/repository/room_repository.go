package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// RoomRepository handles persistence for exam rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository instantiates a room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomSelect = `
	SELECT r.room_id, r.room_name, r.room_type, r.room_capacity, r.building_id, b.building_name
	FROM rooms r
	LEFT JOIN buildings b ON b.building_id = r.building_id`

// List returns rooms matching the filter.
func (r *RoomRepository) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	query := roomSelect
	var (
		conds []string
		args  []interface{}
	)
	if filter.BuildingID != "" {
		args = append(args, filter.BuildingID)
		conds = append(conds, "r.building_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, "r.room_type = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.room_id"

	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// FindByID loads one room by identifier.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.db.GetContext(ctx, &room, roomSelect+" WHERE r.room_id = $1", id); err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a room.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	const query = `
		INSERT INTO rooms (room_id, room_name, room_type, room_capacity, building_id)
		VALUES (:room_id, :room_name, :room_type, :room_capacity, :building_id)`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Update persists changes to a room.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	const query = `
		UPDATE rooms
		SET room_name = :room_name, room_type = :room_type,
		    room_capacity = :room_capacity, building_id = :building_id
		WHERE room_id = :room_id`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

// Delete removes a room.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE room_id = $1`, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}
