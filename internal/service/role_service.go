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

type roleRepository interface {
	ListRoles(ctx context.Context) ([]models.Role, error)
	FindRoleByID(ctx context.Context, id int64) (*models.Role, error)
	CreateRole(ctx context.Context, role *models.Role) error
	UpdateRole(ctx context.Context, role *models.Role) error
	DeleteRole(ctx context.Context, id int64) error
	ListUserRoles(ctx context.Context, filter models.UserRoleFilter) ([]models.UserRole, error)
	FindUserRoleByID(ctx context.Context, id int64) (*models.UserRole, error)
	CreateUserRole(ctx context.Context, userRole *models.UserRole) error
	UpdateUserRole(ctx context.Context, userRole *models.UserRole) error
	DeleteUserRole(ctx context.Context, id int64) error
	ListHistory(ctx context.Context, userRoleID *int64) ([]models.UserRoleHistory, error)
	CreateHistory(ctx context.Context, entry *models.UserRoleHistory) error
}

// RoleRequest holds the payload for creating and updating roles.
type RoleRequest struct {
	Name string `json:"role_name" validate:"required"`
}

// UserRoleRequest holds the payload for creating and updating user-role
// assignments.
type UserRoleRequest struct {
	RoleID       int64      `json:"role_id" validate:"required"`
	UserID       int64      `json:"user_id" validate:"required"`
	CollegeID    *string    `json:"college_id"`
	DepartmentID *string    `json:"department_id"`
	Status       *string    `json:"status"`
	DateStart    *time.Time `json:"date_start"`
	DateEnded    *time.Time `json:"date_ended"`
}

// RoleService handles role and user-role use-cases. Every user-role mutation
// appends a history snapshot so past assignments stay auditable.
type RoleService struct {
	repo      roleRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoleService constructs the role service.
func NewRoleService(repo roleRepository, validate *validator.Validate, logger *zap.Logger) *RoleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{repo: repo, validator: validate, logger: logger}
}

// ListRoles returns all roles.
func (s *RoleService) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roles")
	}
	return roles, nil
}

// GetRole returns one role.
func (s *RoleService) GetRole(ctx context.Context, id int64) (*models.Role, error) {
	role, err := s.repo.FindRoleByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "role not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load role")
	}
	return role, nil
}

// CreateRole registers a role.
func (s *RoleService) CreateRole(ctx context.Context, req RoleRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	role := &models.Role{Name: req.Name}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create role")
	}
	return role, nil
}

// UpdateRole renames a role.
func (s *RoleService) UpdateRole(ctx context.Context, id int64, req RoleRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	if _, err := s.GetRole(ctx, id); err != nil {
		return nil, err
	}
	role := &models.Role{ID: id, Name: req.Name}
	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}
	return role, nil
}

// DeleteRole removes a role.
func (s *RoleService) DeleteRole(ctx context.Context, id int64) error {
	if _, err := s.GetRole(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete role")
	}
	return nil
}

// ListUserRoles returns user-role assignments matching the filter.
func (s *RoleService) ListUserRoles(ctx context.Context, filter models.UserRoleFilter) ([]models.UserRole, error) {
	userRoles, err := s.repo.ListUserRoles(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user roles")
	}
	return userRoles, nil
}

// GetUserRole returns one user-role assignment.
func (s *RoleService) GetUserRole(ctx context.Context, id int64) (*models.UserRole, error) {
	userRole, err := s.repo.FindUserRoleByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user role not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user role")
	}
	return userRole, nil
}

// CreateUserRole assigns a role to a user and records a history snapshot.
func (s *RoleService) CreateUserRole(ctx context.Context, req UserRoleRequest) (*models.UserRole, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user role payload")
	}
	userRole := &models.UserRole{
		RoleID:       req.RoleID,
		UserID:       req.UserID,
		CollegeID:    req.CollegeID,
		DepartmentID: req.DepartmentID,
		Status:       req.Status,
		DateStart:    req.DateStart,
		DateEnded:    req.DateEnded,
	}
	if err := s.repo.CreateUserRole(ctx, userRole); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user role")
	}
	s.appendHistory(ctx, userRole, "created")
	return s.GetUserRole(ctx, userRole.ID)
}

// UpdateUserRole persists changes to an assignment and records a history
// snapshot.
func (s *RoleService) UpdateUserRole(ctx context.Context, id int64, req UserRoleRequest) (*models.UserRole, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user role payload")
	}
	if _, err := s.GetUserRole(ctx, id); err != nil {
		return nil, err
	}
	userRole := &models.UserRole{
		ID:           id,
		RoleID:       req.RoleID,
		UserID:       req.UserID,
		CollegeID:    req.CollegeID,
		DepartmentID: req.DepartmentID,
		Status:       req.Status,
		DateStart:    req.DateStart,
		DateEnded:    req.DateEnded,
	}
	if err := s.repo.UpdateUserRole(ctx, userRole); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user role")
	}
	s.appendHistory(ctx, userRole, "updated")
	return s.GetUserRole(ctx, id)
}

// DeleteUserRole removes an assignment and records a final history snapshot.
func (s *RoleService) DeleteUserRole(ctx context.Context, id int64) error {
	userRole, err := s.GetUserRole(ctx, id)
	if err != nil {
		return err
	}
	s.appendHistory(ctx, userRole, "deleted")
	if err := s.repo.DeleteUserRole(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user role")
	}
	return nil
}

// ListHistory returns role-change snapshots, optionally scoped to one
// assignment.
func (s *RoleService) ListHistory(ctx context.Context, userRoleID *int64) ([]models.UserRoleHistory, error) {
	history, err := s.repo.ListHistory(ctx, userRoleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user role history")
	}
	return history, nil
}

// appendHistory records a snapshot of the assignment. History is best effort:
// a failed append is logged, never surfaced to the caller.
func (s *RoleService) appendHistory(ctx context.Context, userRole *models.UserRole, action string) {
	entry := &models.UserRoleHistory{
		UserRoleID:   userRole.ID,
		UserID:       userRole.UserID,
		RoleID:       &userRole.RoleID,
		CollegeID:    userRole.CollegeID,
		DepartmentID: userRole.DepartmentID,
		DateStart:    userRole.DateStart,
		DateEnded:    userRole.DateEnded,
		Status:       userRole.Status,
		Action:       &action,
		ChangedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateHistory(ctx, entry); err != nil {
		s.logger.Error("failed to append user role history",
			zap.Int64("user_role_id", userRole.ID), zap.String("action", action), zap.Error(err))
	}
}
