package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type availabilityRepository interface {
	List(ctx context.Context, filter models.AvailabilityFilter) ([]models.Availability, error)
	FindByID(ctx context.Context, id int64) (*models.Availability, error)
	Create(ctx context.Context, availability *models.Availability) error
	CreateBatch(ctx context.Context, availabilities []models.Availability) ([]models.Availability, error)
	Update(ctx context.Context, availability *models.Availability) error
	Delete(ctx context.Context, id int64) error
}

// AvailabilityRequest holds one availability submission.
type AvailabilityRequest struct {
	Day      time.Time `json:"day" validate:"required"`
	TimeSlot string    `json:"time_slot" validate:"required"`
	Status   string    `json:"status" validate:"required"`
	Remarks  *string   `json:"remarks"`
	UserID   int64     `json:"user_id" validate:"required"`
}

// AvailabilityService handles proctor availability use-cases. The create
// endpoint accepts either a single submission or a whole batch.
type AvailabilityService struct {
	repo      availabilityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs the availability service.
func NewAvailabilityService(repo availabilityRepository, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, validator: validate, logger: logger}
}

// List returns availability rows, optionally scoped to one user.
func (s *AvailabilityService) List(ctx context.Context, filter models.AvailabilityFilter) ([]models.Availability, error) {
	availabilities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availabilities")
	}
	return availabilities, nil
}

// Get returns one availability row.
func (s *AvailabilityService) Get(ctx context.Context, id int64) (*models.Availability, error) {
	availability, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "availability not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	return availability, nil
}

// Create registers one availability submission.
func (s *AvailabilityService) Create(ctx context.Context, req AvailabilityRequest) (*models.Availability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	availability := &models.Availability{
		Day:      req.Day,
		TimeSlot: req.TimeSlot,
		Status:   req.Status,
		Remarks:  req.Remarks,
		UserID:   req.UserID,
	}
	if err := s.repo.Create(ctx, availability); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create availability")
	}
	return availability, nil
}

// CreateBatch registers several availability submissions atomically.
func (s *AvailabilityService) CreateBatch(ctx context.Context, reqs []AvailabilityRequest) ([]models.Availability, error) {
	if len(reqs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "empty availability batch")
	}
	availabilities := make([]models.Availability, 0, len(reqs))
	for _, req := range reqs {
		if err := s.validator.Struct(req); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
		}
		availabilities = append(availabilities, models.Availability{
			Day:      req.Day,
			TimeSlot: req.TimeSlot,
			Status:   req.Status,
			Remarks:  req.Remarks,
			UserID:   req.UserID,
		})
	}
	created, err := s.repo.CreateBatch(ctx, availabilities)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create availabilities")
	}
	return created, nil
}

// Update persists changes to an availability row.
func (s *AvailabilityService) Update(ctx context.Context, id int64, req AvailabilityRequest) (*models.Availability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	availability := &models.Availability{
		ID:       id,
		Day:      req.Day,
		TimeSlot: req.TimeSlot,
		Status:   req.Status,
		Remarks:  req.Remarks,
		UserID:   req.UserID,
	}
	if err := s.repo.Update(ctx, availability); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update availability")
	}
	return availability, nil
}

// Delete removes an availability row.
func (s *AvailabilityService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete availability")
	}
	return nil
}
