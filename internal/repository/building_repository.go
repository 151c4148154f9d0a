package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// BuildingRepository handles persistence for buildings.
type BuildingRepository struct {
	db *sqlx.DB
}

// NewBuildingRepository instantiates a building repository.
func NewBuildingRepository(db *sqlx.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

// List returns all buildings ordered by identifier.
func (r *BuildingRepository) List(ctx context.Context) ([]models.Building, error) {
	var buildings []models.Building
	if err := r.db.SelectContext(ctx, &buildings,
		`SELECT building_id, building_name FROM buildings ORDER BY building_id`); err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return buildings, nil
}

// FindByID loads one building by identifier.
func (r *BuildingRepository) FindByID(ctx context.Context, id string) (*models.Building, error) {
	var building models.Building
	if err := r.db.GetContext(ctx, &building,
		`SELECT building_id, building_name FROM buildings WHERE building_id = $1`, id); err != nil {
		return nil, err
	}
	return &building, nil
}

// Create inserts a building.
func (r *BuildingRepository) Create(ctx context.Context, building *models.Building) error {
	const query = `INSERT INTO buildings (building_id, building_name) VALUES (:building_id, :building_name)`
	if _, err := r.db.NamedExecContext(ctx, query, building); err != nil {
		return fmt.Errorf("create building: %w", err)
	}
	return nil
}

// Update renames a building.
func (r *BuildingRepository) Update(ctx context.Context, building *models.Building) error {
	const query = `UPDATE buildings SET building_name = :building_name WHERE building_id = :building_id`
	if _, err := r.db.NamedExecContext(ctx, query, building); err != nil {
		return fmt.Errorf("update building: %w", err)
	}
	return nil
}

// Delete removes a building.
func (r *BuildingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM buildings WHERE building_id = $1`, id); err != nil {
		return fmt.Errorf("delete building: %w", err)
	}
	return nil
}
