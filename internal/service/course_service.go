package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Save(ctx context.Context, course *models.Course, assignments []models.CourseUser) error
	Delete(ctx context.Context, id string) error
	ListAssignments(ctx context.Context, courseID string) ([]models.CourseUser, error)
	ListAllAssignments(ctx context.Context) ([]models.CourseUser, error)
	FindAssignment(ctx context.Context, courseID string, userID int64) (*models.CourseUser, error)
	CreateAssignment(ctx context.Context, cu *models.CourseUser) error
	UpdateAssignment(ctx context.Context, cu *models.CourseUser) error
	DeleteAssignment(ctx context.Context, courseID string, userID int64) error
}

// CourseRequest holds the payload for creating and updating courses. Leaders
// must be a subset of the assigned instructors.
type CourseRequest struct {
	ID      string  `json:"course_id" validate:"required"`
	Name    string  `json:"course_name" validate:"required"`
	TermID  int64   `json:"term_id" validate:"required"`
	UserIDs []int64 `json:"user_ids"`
	Leaders []int64 `json:"leaders"`
}

// CourseUserRequest holds the payload for managing one instructor assignment.
type CourseUserRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	UserID   int64  `json:"user_id" validate:"required"`
	IsLeader bool   `json:"is_leader"`
}

// CourseService handles course use-cases, keeping the course row and its
// instructor assignments in step.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// List returns every course as an aggregate of the course row and its
// assignments.
func (s *CourseService) List(ctx context.Context) ([]models.CourseDetail, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	assignments, err := s.repo.ListAllAssignments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course assignments")
	}
	byCourse := make(map[string][]models.CourseUser, len(courses))
	for _, cu := range assignments {
		byCourse[cu.CourseID] = append(byCourse[cu.CourseID], cu)
	}
	details := make([]models.CourseDetail, 0, len(courses))
	for _, course := range courses {
		details = append(details, buildCourseDetail(course, byCourse[course.ID]))
	}
	return details, nil
}

// Get returns one course aggregate.
func (s *CourseService) Get(ctx context.Context, id string) (*models.CourseDetail, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	assignments, err := s.repo.ListAssignments(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course assignments")
	}
	detail := buildCourseDetail(*course, assignments)
	return &detail, nil
}

// Create registers a course together with its instructor assignments.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.CourseDetail, error) {
	return s.save(ctx, req)
}

// Update replaces a course's fields and assignments.
func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (*models.CourseDetail, error) {
	req.ID = id
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.save(ctx, req)
}

func (s *CourseService) save(ctx context.Context, req CourseRequest) (*models.CourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	leaders := make(map[int64]bool, len(req.Leaders))
	for _, id := range req.Leaders {
		leaders[id] = true
	}
	for id := range leaders {
		if !containsID(req.UserIDs, id) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "leaders must be assigned instructors")
		}
	}
	course := &models.Course{ID: req.ID, Name: req.Name, TermID: req.TermID}
	assignments := make([]models.CourseUser, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		name := req.Name
		assignments = append(assignments, models.CourseUser{
			CourseID:   req.ID,
			UserID:     userID,
			CourseName: &name,
			IsLeader:   leaders[userID],
		})
	}
	if err := s.repo.Save(ctx, course, assignments); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save course")
	}
	return s.Get(ctx, req.ID)
}

// Delete removes a course and its assignments.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

// ListAssignments returns the instructor assignments of one course.
func (s *CourseService) ListAssignments(ctx context.Context, courseID string) ([]models.CourseUser, error) {
	assignments, err := s.repo.ListAssignments(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course assignments")
	}
	return assignments, nil
}

// CreateAssignment adds one instructor to a course.
func (s *CourseService) CreateAssignment(ctx context.Context, req CourseUserRequest) (*models.CourseUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course assignment payload")
	}
	course, err := s.repo.FindByID(ctx, req.CourseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	cu := &models.CourseUser{CourseID: req.CourseID, UserID: req.UserID, CourseName: &course.Name, IsLeader: req.IsLeader}
	if err := s.repo.CreateAssignment(ctx, cu); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course assignment")
	}
	return cu, nil
}

// UpdateAssignment changes the leader flag of one assignment.
func (s *CourseService) UpdateAssignment(ctx context.Context, courseID string, userID int64, isLeader bool) (*models.CourseUser, error) {
	cu, err := s.repo.FindAssignment(ctx, courseID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course assignment")
	}
	cu.IsLeader = isLeader
	if err := s.repo.UpdateAssignment(ctx, cu); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course assignment")
	}
	return cu, nil
}

// DeleteAssignment removes one instructor from a course.
func (s *CourseService) DeleteAssignment(ctx context.Context, courseID string, userID int64) error {
	if _, err := s.repo.FindAssignment(ctx, courseID, userID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "course assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course assignment")
	}
	if err := s.repo.DeleteAssignment(ctx, courseID, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course assignment")
	}
	return nil
}

func buildCourseDetail(course models.Course, assignments []models.CourseUser) models.CourseDetail {
	detail := models.CourseDetail{
		CourseID:        course.ID,
		CourseName:      course.Name,
		TermID:          course.TermID,
		TermName:        course.TermName,
		UserIDs:         make([]int64, 0, len(assignments)),
		Leaders:         []int64{},
		InstructorNames: make([]string, 0, len(assignments)),
	}
	for _, cu := range assignments {
		detail.UserIDs = append(detail.UserIDs, cu.UserID)
		if cu.IsLeader {
			detail.Leaders = append(detail.Leaders, cu.UserID)
		}
		var parts []string
		if cu.FirstName != nil {
			parts = append(parts, *cu.FirstName)
		}
		if cu.LastName != nil {
			parts = append(parts, *cu.LastName)
		}
		detail.InstructorNames = append(detail.InstructorNames, strings.Join(parts, " "))
	}
	return detail
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
