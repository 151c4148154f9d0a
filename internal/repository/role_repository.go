package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// RoleRepository handles persistence for roles, user-role assignments and the
// append-only role history.
type RoleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository instantiates a role repository.
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// ListRoles returns all roles ordered by identifier.
func (r *RoleRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.SelectContext(ctx, &roles, `SELECT role_id, role_name FROM roles ORDER BY role_id`); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// FindRoleByID loads one role by identifier.
func (r *RoleRepository) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	var role models.Role
	if err := r.db.GetContext(ctx, &role, `SELECT role_id, role_name FROM roles WHERE role_id = $1`, id); err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateRole inserts a role and fills in the generated identifier.
func (r *RoleRepository) CreateRole(ctx context.Context, role *models.Role) error {
	const query = `INSERT INTO roles (role_name) VALUES ($1) RETURNING role_id`
	if err := r.db.GetContext(ctx, &role.ID, query, role.Name); err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

// UpdateRole renames a role.
func (r *RoleRepository) UpdateRole(ctx context.Context, role *models.Role) error {
	const query = `UPDATE roles SET role_name = :role_name WHERE role_id = :role_id`
	if _, err := r.db.NamedExecContext(ctx, query, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// DeleteRole removes a role.
func (r *RoleRepository) DeleteRole(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE role_id = $1`, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

const userRoleSelect = `
	SELECT ur.user_role_id, ur.role_id, ur.user_id, ur.college_id, ur.department_id,
	       ur.status, ur.date_start, ur.date_ended, ur.created_at,
	       ro.role_name, c.college_name, d.department_name,
	       TRIM(CONCAT(u.first_name, ' ', u.last_name)) AS user_full_name
	FROM user_roles ur
	LEFT JOIN roles ro ON ro.role_id = ur.role_id
	LEFT JOIN colleges c ON c.college_id = ur.college_id
	LEFT JOIN departments d ON d.department_id = ur.department_id
	LEFT JOIN users u ON u.user_id = ur.user_id`

// ListUserRoles returns user-role assignments matching the filter.
func (r *RoleRepository) ListUserRoles(ctx context.Context, filter models.UserRoleFilter) ([]models.UserRole, error) {
	query := userRoleSelect
	var (
		conds []string
		args  []interface{}
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, "ur.user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.RoleID != nil {
		args = append(args, *filter.RoleID)
		conds = append(conds, "ur.role_id = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY ur.user_role_id"

	var userRoles []models.UserRole
	if err := r.db.SelectContext(ctx, &userRoles, query, args...); err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	return userRoles, nil
}

// FindUserRoleByID loads one user-role assignment by identifier.
func (r *RoleRepository) FindUserRoleByID(ctx context.Context, id int64) (*models.UserRole, error) {
	var userRole models.UserRole
	if err := r.db.GetContext(ctx, &userRole, userRoleSelect+" WHERE ur.user_role_id = $1", id); err != nil {
		return nil, err
	}
	return &userRole, nil
}

// CreateUserRole inserts a user-role assignment and fills in the generated
// identifier.
func (r *RoleRepository) CreateUserRole(ctx context.Context, userRole *models.UserRole) error {
	const query = `
		INSERT INTO user_roles (role_id, user_id, college_id, department_id, status, date_start, date_ended)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_role_id`
	if err := r.db.GetContext(ctx, &userRole.ID, query,
		userRole.RoleID, userRole.UserID, userRole.CollegeID, userRole.DepartmentID,
		userRole.Status, userRole.DateStart, userRole.DateEnded); err != nil {
		return fmt.Errorf("create user role: %w", err)
	}
	return nil
}

// UpdateUserRole persists changes to a user-role assignment.
func (r *RoleRepository) UpdateUserRole(ctx context.Context, userRole *models.UserRole) error {
	const query = `
		UPDATE user_roles
		SET role_id = :role_id, user_id = :user_id, college_id = :college_id,
		    department_id = :department_id, status = :status,
		    date_start = :date_start, date_ended = :date_ended
		WHERE user_role_id = :user_role_id`
	if _, err := r.db.NamedExecContext(ctx, query, userRole); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	return nil
}

// DeleteUserRole removes a user-role assignment.
func (r *RoleRepository) DeleteUserRole(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_role_id = $1`, id); err != nil {
		return fmt.Errorf("delete user role: %w", err)
	}
	return nil
}

// ListHistory returns role-change snapshots, newest first, optionally scoped
// to one user-role assignment.
func (r *RoleRepository) ListHistory(ctx context.Context, userRoleID *int64) ([]models.UserRoleHistory, error) {
	query := `
		SELECT history_id, user_role_id, user_id, role_id, college_id, department_id,
		       date_start, date_ended, status, action, changed_at
		FROM user_role_history`
	var args []interface{}
	if userRoleID != nil {
		query += " WHERE user_role_id = $1"
		args = append(args, *userRoleID)
	}
	query += " ORDER BY changed_at DESC"

	var history []models.UserRoleHistory
	if err := r.db.SelectContext(ctx, &history, query, args...); err != nil {
		return nil, fmt.Errorf("list user role history: %w", err)
	}
	return history, nil
}

// CreateHistory appends one role-change snapshot. History rows are never
// updated afterwards.
func (r *RoleRepository) CreateHistory(ctx context.Context, entry *models.UserRoleHistory) error {
	const query = `
		INSERT INTO user_role_history (user_role_id, user_id, role_id, college_id, department_id,
		                               date_start, date_ended, status, action, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING history_id`
	if err := r.db.GetContext(ctx, &entry.ID, query,
		entry.UserRoleID, entry.UserID, entry.RoleID, entry.CollegeID, entry.DepartmentID,
		entry.DateStart, entry.DateEnded, entry.Status, entry.Action, entry.ChangedAt); err != nil {
		return fmt.Errorf("create user role history: %w", err)
	}
	return nil
}
