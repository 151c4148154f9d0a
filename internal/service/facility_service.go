package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type buildingRepository interface {
	List(ctx context.Context) ([]models.Building, error)
	FindByID(ctx context.Context, id string) (*models.Building, error)
	Create(ctx context.Context, building *models.Building) error
	Update(ctx context.Context, building *models.Building) error
	Delete(ctx context.Context, id string) error
}

type roomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

// BuildingRequest holds the payload for creating and updating buildings.
type BuildingRequest struct {
	ID   string `json:"building_id" validate:"required"`
	Name string `json:"building_name" validate:"required"`
}

// RoomRequest holds the payload for creating and updating rooms.
type RoomRequest struct {
	ID         string `json:"room_id" validate:"required"`
	Name       string `json:"room_name" validate:"required"`
	Type       string `json:"room_type" validate:"required"`
	Capacity   int    `json:"room_capacity" validate:"gte=0"`
	BuildingID string `json:"building_id" validate:"required"`
}

// FacilityService handles building and room use-cases.
type FacilityService struct {
	buildings buildingRepository
	rooms     roomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacilityService constructs the facility service.
func NewFacilityService(buildings buildingRepository, rooms roomRepository, validate *validator.Validate, logger *zap.Logger) *FacilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacilityService{buildings: buildings, rooms: rooms, validator: validate, logger: logger}
}

// ListBuildings returns all buildings.
func (s *FacilityService) ListBuildings(ctx context.Context) ([]models.Building, error) {
	buildings, err := s.buildings.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list buildings")
	}
	return buildings, nil
}

// GetBuilding returns one building.
func (s *FacilityService) GetBuilding(ctx context.Context, id string) (*models.Building, error) {
	building, err := s.buildings.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}
	return building, nil
}

// CreateBuilding registers a building.
func (s *FacilityService) CreateBuilding(ctx context.Context, req BuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid building payload")
	}
	building := &models.Building{ID: req.ID, Name: req.Name}
	if err := s.buildings.Create(ctx, building); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create building")
	}
	return building, nil
}

// UpdateBuilding renames a building.
func (s *FacilityService) UpdateBuilding(ctx context.Context, id string, req BuildingRequest) (*models.Building, error) {
	req.ID = id
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid building payload")
	}
	if _, err := s.GetBuilding(ctx, id); err != nil {
		return nil, err
	}
	building := &models.Building{ID: id, Name: req.Name}
	if err := s.buildings.Update(ctx, building); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update building")
	}
	return building, nil
}

// DeleteBuilding removes a building.
func (s *FacilityService) DeleteBuilding(ctx context.Context, id string) error {
	if _, err := s.GetBuilding(ctx, id); err != nil {
		return err
	}
	if err := s.buildings.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete building")
	}
	return nil
}

// ListRooms returns rooms matching the filter.
func (s *FacilityService) ListRooms(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	rooms, err := s.rooms.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// GetRoom returns one room.
func (s *FacilityService) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return room, nil
}

// CreateRoom registers a room inside an existing building.
func (s *FacilityService) CreateRoom(ctx context.Context, req RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	if _, err := s.GetBuilding(ctx, req.BuildingID); err != nil {
		return nil, err
	}
	room := &models.Room{ID: req.ID, Name: req.Name, Type: req.Type, Capacity: req.Capacity, BuildingID: req.BuildingID}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return s.GetRoom(ctx, room.ID)
}

// UpdateRoom persists changes to a room.
func (s *FacilityService) UpdateRoom(ctx context.Context, id string, req RoomRequest) (*models.Room, error) {
	req.ID = id
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	if _, err := s.GetRoom(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.GetBuilding(ctx, req.BuildingID); err != nil {
		return nil, err
	}
	room := &models.Room{ID: id, Name: req.Name, Type: req.Type, Capacity: req.Capacity, BuildingID: req.BuildingID}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}
	return s.GetRoom(ctx, id)
}

// DeleteRoom removes a room.
func (s *FacilityService) DeleteRoom(ctx context.Context, id string) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete room")
	}
	return nil
}
