package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
)

type mockRoleRepo struct {
	roles     map[int64]models.Role
	userRoles map[int64]models.UserRole
	history   []models.UserRoleHistory
	nextID    int64
}

func (m *mockRoleRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	out := make([]models.Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRoleRepo) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	if r, ok := m.roles[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRoleRepo) CreateRole(ctx context.Context, role *models.Role) error {
	if m.roles == nil {
		m.roles = make(map[int64]models.Role)
	}
	m.nextID++
	role.ID = m.nextID
	m.roles[role.ID] = *role
	return nil
}

func (m *mockRoleRepo) UpdateRole(ctx context.Context, role *models.Role) error {
	m.roles[role.ID] = *role
	return nil
}

func (m *mockRoleRepo) DeleteRole(ctx context.Context, id int64) error {
	delete(m.roles, id)
	return nil
}

func (m *mockRoleRepo) ListUserRoles(ctx context.Context, filter models.UserRoleFilter) ([]models.UserRole, error) {
	out := make([]models.UserRole, 0, len(m.userRoles))
	for _, ur := range m.userRoles {
		if filter.UserID != nil && ur.UserID != *filter.UserID {
			continue
		}
		if filter.RoleID != nil && ur.RoleID != *filter.RoleID {
			continue
		}
		out = append(out, ur)
	}
	return out, nil
}

func (m *mockRoleRepo) FindUserRoleByID(ctx context.Context, id int64) (*models.UserRole, error) {
	if ur, ok := m.userRoles[id]; ok {
		return &ur, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRoleRepo) CreateUserRole(ctx context.Context, userRole *models.UserRole) error {
	if m.userRoles == nil {
		m.userRoles = make(map[int64]models.UserRole)
	}
	m.nextID++
	userRole.ID = m.nextID
	m.userRoles[userRole.ID] = *userRole
	return nil
}

func (m *mockRoleRepo) UpdateUserRole(ctx context.Context, userRole *models.UserRole) error {
	m.userRoles[userRole.ID] = *userRole
	return nil
}

func (m *mockRoleRepo) DeleteUserRole(ctx context.Context, id int64) error {
	delete(m.userRoles, id)
	return nil
}

func (m *mockRoleRepo) ListHistory(ctx context.Context, userRoleID *int64) ([]models.UserRoleHistory, error) {
	if userRoleID == nil {
		return m.history, nil
	}
	var out []models.UserRoleHistory
	for _, h := range m.history {
		if h.UserRoleID == *userRoleID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockRoleRepo) CreateHistory(ctx context.Context, entry *models.UserRoleHistory) error {
	m.nextID++
	entry.ID = m.nextID
	m.history = append(m.history, *entry)
	return nil
}

func TestRoleServiceCreateUserRoleAppendsHistory(t *testing.T) {
	repo := &mockRoleRepo{}
	svc := NewRoleService(repo, validator.New(), zap.NewNop())

	userRole, err := svc.CreateUserRole(context.Background(), UserRoleRequest{RoleID: 3, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(3), userRole.RoleID)
	require.Len(t, repo.history, 1)
	assert.Equal(t, "created", *repo.history[0].Action)
	assert.Equal(t, userRole.ID, repo.history[0].UserRoleID)
}

func TestRoleServiceUpdateUserRoleAppendsHistory(t *testing.T) {
	repo := &mockRoleRepo{userRoles: map[int64]models.UserRole{
		5: {ID: 5, RoleID: 3, UserID: 7},
	}}
	svc := NewRoleService(repo, validator.New(), zap.NewNop())

	_, err := svc.UpdateUserRole(context.Background(), 5, UserRoleRequest{RoleID: 4, UserID: 7})
	require.NoError(t, err)
	require.Len(t, repo.history, 1)
	assert.Equal(t, "updated", *repo.history[0].Action)
	assert.Equal(t, int64(4), repo.userRoles[5].RoleID)
}

func TestRoleServiceDeleteUserRoleAppendsFinalSnapshot(t *testing.T) {
	repo := &mockRoleRepo{userRoles: map[int64]models.UserRole{
		5: {ID: 5, RoleID: 3, UserID: 7},
	}}
	svc := NewRoleService(repo, validator.New(), zap.NewNop())

	err := svc.DeleteUserRole(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, repo.userRoles)
	require.Len(t, repo.history, 1)
	assert.Equal(t, "deleted", *repo.history[0].Action)
}

func TestRoleServiceListUserRolesFiltered(t *testing.T) {
	repo := &mockRoleRepo{userRoles: map[int64]models.UserRole{
		5: {ID: 5, RoleID: 3, UserID: 7},
		6: {ID: 6, RoleID: 4, UserID: 8},
	}}
	svc := NewRoleService(repo, validator.New(), zap.NewNop())

	userID := int64(7)
	userRoles, err := svc.ListUserRoles(context.Background(), models.UserRoleFilter{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, userRoles, 1)
	assert.Equal(t, int64(5), userRoles[0].ID)
}
