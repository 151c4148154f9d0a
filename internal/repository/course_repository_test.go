package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examsync/examsync-api/internal/models"
)

func newCourseMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	termName := "1st Semester"
	rows := sqlmock.NewRows([]string{"course_id", "course_name", "term_id", "term_name"}).
		AddRow("CS101", "Intro to Computing", int64(1), termName)
	mock.ExpectQuery("FROM courses c").WillReturnRows(rows)

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS101", courses[0].ID)
	assert.Equal(t, &termName, courses[0].TermName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositorySaveReplacesAssignments(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO courses").
		WithArgs("CS101", "Intro to Computing", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM course_users").
		WithArgs("CS101").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO course_users").
		WithArgs("CS101", int64(7), sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO course_users").
		WithArgs("CS101", int64(8), sqlmock.AnyArg(), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	course := &models.Course{ID: "CS101", Name: "Intro to Computing", TermID: 1}
	assignments := []models.CourseUser{
		{CourseID: "CS101", UserID: 7, IsLeader: true},
		{CourseID: "CS101", UserID: 8, IsLeader: false},
	}
	err := repo.Save(context.Background(), course, assignments)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositorySaveRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO courses").
		WithArgs("CS101", "Intro to Computing", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM course_users").
		WithArgs("CS101").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	course := &models.Course{ID: "CS101", Name: "Intro to Computing", TermID: 1}
	err := repo.Save(context.Background(), course, nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM course_users").
		WithArgs("CS101").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM courses").
		WithArgs("CS101").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "CS101")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListAssignments(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"course_id", "user_id", "course_name", "is_leader", "first_name", "last_name"}).
		AddRow("CS101", int64(7), "Intro to Computing", true, "Grace", "Hopper")
	mock.ExpectQuery("FROM course_users cu").WithArgs("CS101").WillReturnRows(rows)

	assignments, err := repo.ListAssignments(context.Background(), "CS101")
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.True(t, assignments[0].IsLeader)
	assert.NoError(t, mock.ExpectationsWereMet())
}
