package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examsync/examsync-api/internal/models"
)

func newRoleMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRoleRepositoryCreateRole(t *testing.T) {
	db, mock, cleanup := newRoleMock(t)
	defer cleanup()
	repo := NewRoleRepository(db)

	mock.ExpectQuery("INSERT INTO roles").
		WithArgs("Scheduler").
		WillReturnRows(sqlmock.NewRows([]string{"role_id"}).AddRow(int64(3)))

	role := &models.Role{Name: "Scheduler"}
	err := repo.CreateRole(context.Background(), role)
	require.NoError(t, err)
	assert.Equal(t, int64(3), role.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepositoryListUserRolesFiltered(t *testing.T) {
	db, mock, cleanup := newRoleMock(t)
	defer cleanup()
	repo := NewRoleRepository(db)

	rows := sqlmock.NewRows([]string{
		"user_role_id", "role_id", "user_id", "college_id", "department_id",
		"status", "date_start", "date_ended", "created_at",
		"role_name", "college_name", "department_name", "user_full_name",
	}).AddRow(int64(5), int64(3), int64(7), "COE", nil, "active", time.Now(), nil, time.Now(),
		"Scheduler", "College of Engineering", nil, "Grace Hopper")
	mock.ExpectQuery("FROM user_roles ur(.|\n)+WHERE ur.user_id = (.+) AND ur.role_id = ").
		WithArgs(int64(7), int64(3)).
		WillReturnRows(rows)

	userID, roleID := int64(7), int64(3)
	userRoles, err := repo.ListUserRoles(context.Background(), models.UserRoleFilter{UserID: &userID, RoleID: &roleID})
	require.NoError(t, err)
	require.Len(t, userRoles, 1)
	assert.Equal(t, "Scheduler", *userRoles[0].RoleName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepositoryCreateHistory(t *testing.T) {
	db, mock, cleanup := newRoleMock(t)
	defer cleanup()
	repo := NewRoleRepository(db)

	mock.ExpectQuery("INSERT INTO user_role_history").
		WithArgs(int64(5), int64(7), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"history_id"}).AddRow(int64(41)))

	action := "updated"
	entry := &models.UserRoleHistory{UserRoleID: 5, UserID: 7, Action: &action, ChangedAt: time.Now()}
	err := repo.CreateHistory(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(41), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepositoryListHistoryForUserRole(t *testing.T) {
	db, mock, cleanup := newRoleMock(t)
	defer cleanup()
	repo := NewRoleRepository(db)

	rows := sqlmock.NewRows([]string{
		"history_id", "user_role_id", "user_id", "role_id", "college_id", "department_id",
		"date_start", "date_ended", "status", "action", "changed_at",
	}).AddRow(int64(41), int64(5), int64(7), int64(3), nil, nil, nil, nil, "active", "created", time.Now())
	mock.ExpectQuery("FROM user_role_history(.|\n)+ORDER BY changed_at DESC").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	userRoleID := int64(5)
	history, err := repo.ListHistory(context.Background(), &userRoleID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(5), history[0].UserRoleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
