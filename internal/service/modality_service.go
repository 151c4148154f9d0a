package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type modalityRepository interface {
	List(ctx context.Context, filter models.ModalityFilter) ([]models.Modality, error)
	FindByID(ctx context.Context, id int64) (*models.Modality, error)
	Create(ctx context.Context, modality *models.Modality) error
	Update(ctx context.Context, modality *models.Modality) error
	Delete(ctx context.Context, id int64) error
}

// ModalityRequest holds the payload for creating and updating modalities.
type ModalityRequest struct {
	Type          string   `json:"modality_type" validate:"required"`
	RoomType      string   `json:"room_type" validate:"required"`
	Remarks       *string  `json:"modality_remarks"`
	CourseID      string   `json:"course_id" validate:"required"`
	ProgramID     string   `json:"program_id" validate:"required"`
	RoomID        *string  `json:"room_id"`
	UserID        int64    `json:"user_id" validate:"required"`
	SectionName   *string  `json:"section_name"`
	PossibleRooms []string `json:"possible_rooms"`
}

// ModalityService handles modality use-cases.
type ModalityService struct {
	repo      modalityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewModalityService constructs the modality service.
func NewModalityService(repo modalityRepository, validate *validator.Validate, logger *zap.Logger) *ModalityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModalityService{repo: repo, validator: validate, logger: logger}
}

// List returns modalities matching the filter.
func (s *ModalityService) List(ctx context.Context, filter models.ModalityFilter) ([]models.Modality, error) {
	modalities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list modalities")
	}
	return modalities, nil
}

// Get returns one modality.
func (s *ModalityService) Get(ctx context.Context, id int64) (*models.Modality, error) {
	modality, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "modality not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load modality")
	}
	return modality, nil
}

// Create registers a modality.
func (s *ModalityService) Create(ctx context.Context, req ModalityRequest) (*models.Modality, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid modality payload")
	}
	modality := modalityFromRequest(0, req)
	if err := s.repo.Create(ctx, modality); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create modality")
	}
	return s.Get(ctx, modality.ID)
}

// Update persists changes to a modality.
func (s *ModalityService) Update(ctx context.Context, id int64, req ModalityRequest) (*models.Modality, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid modality payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	modality := modalityFromRequest(id, req)
	if err := s.repo.Update(ctx, modality); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update modality")
	}
	return s.Get(ctx, id)
}

// Delete removes a modality.
func (s *ModalityService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete modality")
	}
	return nil
}

func modalityFromRequest(id int64, req ModalityRequest) *models.Modality {
	possible := req.PossibleRooms
	if possible == nil {
		possible = []string{}
	}
	return &models.Modality{
		ID:            id,
		Type:          req.Type,
		RoomType:      req.RoomType,
		Remarks:       req.Remarks,
		CourseID:      req.CourseID,
		ProgramID:     req.ProgramID,
		RoomID:        req.RoomID,
		UserID:        req.UserID,
		SectionName:   req.SectionName,
		PossibleRooms: possible,
	}
}
