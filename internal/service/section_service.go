package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type sectionRepository interface {
	List(ctx context.Context, filter models.SectionFilter) ([]models.Section, error)
	FindByID(ctx context.Context, id int64) (*models.Section, error)
	Create(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id int64) error
}

// SectionRequest holds the payload for creating and updating sections.
type SectionRequest struct {
	CourseID  string `json:"course_id" validate:"required"`
	ProgramID string `json:"program_id" validate:"required"`
	Name      string `json:"section_name" validate:"required"`
	Capacity  int    `json:"number_of_students" validate:"gte=0"`
	YearLevel string `json:"year_level" validate:"required"`
	TermID    int64  `json:"term_id" validate:"required"`
	UserID    *int64 `json:"user_id"`
}

// SectionService handles section use-cases.
type SectionService struct {
	repo      sectionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSectionService constructs the section service.
func NewSectionService(repo sectionRepository, validate *validator.Validate, logger *zap.Logger) *SectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{repo: repo, validator: validate, logger: logger}
}

// List returns sections matching the filter.
func (s *SectionService) List(ctx context.Context, filter models.SectionFilter) ([]models.Section, error) {
	sections, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	return sections, nil
}

// Get returns one section.
func (s *SectionService) Get(ctx context.Context, id int64) (*models.Section, error) {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	return section, nil
}

// Create registers a section.
func (s *SectionService) Create(ctx context.Context, req SectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	section := &models.Section{
		CourseID:  req.CourseID,
		ProgramID: req.ProgramID,
		Name:      req.Name,
		Capacity:  req.Capacity,
		YearLevel: req.YearLevel,
		TermID:    req.TermID,
		UserID:    req.UserID,
	}
	if err := s.repo.Create(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create section")
	}
	return s.Get(ctx, section.ID)
}

// Update persists changes to a section.
func (s *SectionService) Update(ctx context.Context, id int64, req SectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	section := &models.Section{
		ID:        id,
		CourseID:  req.CourseID,
		ProgramID: req.ProgramID,
		Name:      req.Name,
		Capacity:  req.Capacity,
		YearLevel: req.YearLevel,
		TermID:    req.TermID,
		UserID:    req.UserID,
	}
	if err := s.repo.Update(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update section")
	}
	return s.Get(ctx, id)
}

// Delete removes a section.
func (s *SectionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete section")
	}
	return nil
}
