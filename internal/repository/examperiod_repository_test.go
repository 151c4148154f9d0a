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

func newExamPeriodMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func examPeriodColumns() []string {
	return []string{
		"examperiod_id", "start_date", "end_date", "academic_year", "exam_category",
		"term_id", "department_id", "college_id", "term_name", "department_name", "college_name",
	}
}

func TestExamPeriodRepositoryListNewestFirst(t *testing.T) {
	db, mock, cleanup := newExamPeriodMock(t)
	defer cleanup()
	repo := NewExamPeriodRepository(db)

	start := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(examPeriodColumns()).
		AddRow(int64(12), start, start.AddDate(0, 0, 4), "2025-2026", "Midterm", int64(1), nil, "COE", "1st Semester", nil, "College of Engineering").
		AddRow(int64(11), start, start.AddDate(0, 0, 4), "2025-2026", "Midterm", int64(1), nil, "CAS", "1st Semester", nil, "College of Arts and Sciences")
	mock.ExpectQuery("FROM exam_periods ep(.|\n)+ORDER BY ep.examperiod_id DESC").WillReturnRows(rows)

	periods, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, int64(12), periods[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamPeriodRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newExamPeriodMock(t)
	defer cleanup()
	repo := NewExamPeriodRepository(db)

	mock.ExpectQuery("INSERT INTO exam_periods").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "2025-2026", "Final", int64(1), nil, "COE").
		WillReturnRows(sqlmock.NewRows([]string{"examperiod_id"}).AddRow(int64(31)))

	collegeID := "COE"
	period := &models.ExamPeriod{
		StartDate:    time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
		AcademicYear: "2025-2026",
		Category:     "Final",
		TermID:       1,
		CollegeID:    &collegeID,
	}
	err := repo.Create(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, int64(31), period.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamPeriodRepositoryFindTemplateForDate(t *testing.T) {
	db, mock, cleanup := newExamPeriodMock(t)
	defer cleanup()
	repo := NewExamPeriodRepository(db)

	start := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(examPeriodColumns()).
		AddRow(int64(11), start, start.AddDate(0, 0, 4), "2025-2026", "Midterm", int64(1), nil, "CAS", "1st Semester", nil, "College of Arts and Sciences")
	mock.ExpectQuery("WHERE ep.start_date = (.+) ORDER BY ep.examperiod_id LIMIT 1").
		WithArgs(start).
		WillReturnRows(rows)

	period, err := repo.FindTemplateForDate(context.Background(), start)
	require.NoError(t, err)
	assert.Equal(t, int64(11), period.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamPeriodRepositoryFindTemplateForDateMissing(t *testing.T) {
	db, mock, cleanup := newExamPeriodMock(t)
	defer cleanup()
	repo := NewExamPeriodRepository(db)

	start := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE ep.start_date = (.+) ORDER BY ep.examperiod_id LIMIT 1").
		WithArgs(start).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindTemplateForDate(context.Background(), start)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamPeriodRepositoryExistsForDateAndCollege(t *testing.T) {
	db, mock, cleanup := newExamPeriodMock(t)
	defer cleanup()
	repo := NewExamPeriodRepository(db)

	start := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(start, "COE").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForDateAndCollege(context.Background(), start, "COE")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamPeriodRepositoryDeleteByDateAndCollegeID(t *testing.T) {
	db, mock, cleanup := newExamPeriodMock(t)
	defer cleanup()
	repo := NewExamPeriodRepository(db)

	start := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM exam_periods WHERE start_date = (.+) AND college_id = (.+)").
		WithArgs(start, "COE").
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.DeleteByDateAndCollegeID(context.Background(), start, "COE")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
