package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examsync/examsync-api/internal/models"
)

func newUserMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func userColumns() []string {
	return []string{
		"user_id", "first_name", "middle_name", "last_name", "email_address",
		"contact_number", "avatar_url", "status", "user_uuid", "password_hash", "created_at",
	}
}

func TestUserRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newUserMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(7), "Grace", nil, "Hopper", "grace@example.edu", nil, nil, "active", nil, nil, time.Now())
	mock.ExpectQuery("FROM users(.|\n)+ILIKE").
		WithArgs("active", "%grace%").
		WillReturnRows(rows)

	users, err := repo.List(context.Background(), models.UserFilter{Status: "active", Search: "grace"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "grace@example.edu", users[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newUserMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(7), "Grace", nil, "Hopper", "grace@example.edu", nil, nil, "active", nil, nil, time.Now())
	mock.ExpectQuery("WHERE email_address = ").
		WithArgs("grace@example.edu").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "grace@example.edu")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailMissing(t *testing.T) {
	db, mock, cleanup := newUserMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("WHERE email_address = ").
		WithArgs("nobody@example.edu").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.edu")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	db, mock, cleanup := newUserMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("$2a$10$hash", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), 7, "$2a$10$hash")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
