package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
)

type mockExamPeriodRepo struct {
	periods map[int64]models.ExamPeriod
	nextID  int64
}

func (m *mockExamPeriodRepo) List(ctx context.Context) ([]models.ExamPeriod, error) {
	out := make([]models.ExamPeriod, 0, len(m.periods))
	for _, p := range m.periods {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockExamPeriodRepo) FindByID(ctx context.Context, id int64) (*models.ExamPeriod, error) {
	if p, ok := m.periods[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockExamPeriodRepo) Create(ctx context.Context, period *models.ExamPeriod) error {
	if m.periods == nil {
		m.periods = make(map[int64]models.ExamPeriod)
	}
	m.nextID++
	period.ID = m.nextID + 100
	m.periods[period.ID] = *period
	return nil
}

func (m *mockExamPeriodRepo) Update(ctx context.Context, period *models.ExamPeriod) error {
	m.periods[period.ID] = *period
	return nil
}

func (m *mockExamPeriodRepo) Delete(ctx context.Context, id int64) error {
	delete(m.periods, id)
	return nil
}

func (m *mockExamPeriodRepo) FindTemplateForDate(ctx context.Context, date time.Time) (*models.ExamPeriod, error) {
	var template *models.ExamPeriod
	for id, p := range m.periods {
		if p.StartDate.Equal(date) {
			if template == nil || id < template.ID {
				candidate := p
				template = &candidate
			}
		}
	}
	if template == nil {
		return nil, sql.ErrNoRows
	}
	return template, nil
}

func (m *mockExamPeriodRepo) ExistsForDateAndCollege(ctx context.Context, date time.Time, collegeID string) (bool, error) {
	for _, p := range m.periods {
		if p.StartDate.Equal(date) && p.CollegeID != nil && *p.CollegeID == collegeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockExamPeriodRepo) DeleteByDateAndCollegeID(ctx context.Context, date time.Time, collegeID string) (int64, error) {
	var n int64
	for id, p := range m.periods {
		if p.StartDate.Equal(date) && p.CollegeID != nil && *p.CollegeID == collegeID {
			delete(m.periods, id)
			n++
		}
	}
	return n, nil
}

func (m *mockExamPeriodRepo) DeleteByDateAndCollegeName(ctx context.Context, date time.Time, collegeName string) (int64, error) {
	var n int64
	for id, p := range m.periods {
		if p.StartDate.Equal(date) && p.CollegeName != nil && *p.CollegeName == collegeName {
			delete(m.periods, id)
			n++
		}
	}
	return n, nil
}

type mockCollegeLookup struct {
	colleges []models.College
}

func (m *mockCollegeLookup) FindByID(ctx context.Context, id string) (*models.College, error) {
	for _, c := range m.colleges {
		if c.ID == id {
			college := c
			return &college, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCollegeLookup) FindByName(ctx context.Context, name string) (*models.College, error) {
	for _, c := range m.colleges {
		if c.Name == name {
			college := c
			return &college, nil
		}
	}
	return nil, sql.ErrNoRows
}

func strPtr(s string) *string { return &s }

func newExamPeriodFixture() (*ExamPeriodService, *mockExamPeriodRepo) {
	start := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	repo := &mockExamPeriodRepo{periods: map[int64]models.ExamPeriod{
		11: {
			ID: 11, StartDate: start, EndDate: start.AddDate(0, 0, 4),
			AcademicYear: "2025-2026", Category: "Midterm", TermID: 1,
			CollegeID: strPtr("CAS"), CollegeName: strPtr("College of Arts and Sciences"),
		},
	}}
	colleges := &mockCollegeLookup{colleges: []models.College{
		{ID: "CAS", Name: "College of Arts and Sciences"},
		{ID: "COE", Name: "College of Engineering"},
	}}
	return NewExamPeriodService(repo, colleges, validator.New(), zap.NewNop()), repo
}

func TestExamPeriodServiceReconcileAssignsFromTemplate(t *testing.T) {
	svc, repo := newExamPeriodFixture()

	result, err := svc.Reconcile(context.Background(), []models.ReconcileInstruction{
		{StartDate: "2025-10-06", CollegeName: "College of Engineering"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.UpdatedCount)

	var created *models.ExamPeriod
	for _, p := range repo.periods {
		if p.CollegeID != nil && *p.CollegeID == "COE" {
			candidate := p
			created = &candidate
		}
	}
	require.NotNil(t, created)
	assert.Equal(t, "Midterm", created.Category)
	assert.Equal(t, "2025-2026", created.AcademicYear)
}

func TestExamPeriodServiceReconcileSkipsExistingAssignment(t *testing.T) {
	svc, repo := newExamPeriodFixture()

	result, err := svc.Reconcile(context.Background(), []models.ReconcileInstruction{
		{StartDate: "2025-10-06", CollegeName: "College of Arts and Sciences"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.UpdatedCount)
	assert.Len(t, repo.periods, 1)
}

func TestExamPeriodServiceReconcileRemovesByName(t *testing.T) {
	svc, repo := newExamPeriodFixture()

	result, err := svc.Reconcile(context.Background(), []models.ReconcileInstruction{
		{StartDate: "2025-10-06", CollegeToRemove: "College of Arts and Sciences"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.UpdatedCount)
	assert.Empty(t, repo.periods)
}

func TestExamPeriodServiceReconcileRemovalWinsOverAssignment(t *testing.T) {
	svc, repo := newExamPeriodFixture()
	start := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	repo.periods[12] = models.ExamPeriod{
		ID: 12, StartDate: start, EndDate: start.AddDate(0, 0, 4),
		AcademicYear: "2025-2026", Category: "Midterm", TermID: 1,
		CollegeID: strPtr("COE"), CollegeName: strPtr("College of Engineering"),
	}

	result, err := svc.Reconcile(context.Background(), []models.ReconcileInstruction{
		{StartDate: "2025-10-06", CollegeToRemove: "CAS", CollegeName: "College of Arts and Sciences"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.UpdatedCount)

	// CAS stays unassigned even though a template for the date survives.
	for _, p := range repo.periods {
		if p.CollegeID != nil && *p.CollegeID == "CAS" {
			t.Fatalf("CAS period should not be re-created: %+v", p)
		}
	}
	assert.Len(t, repo.periods, 1)
}

func TestExamPeriodServiceReconcileAddWithoutTemplateIsNoOp(t *testing.T) {
	svc, repo := newExamPeriodFixture()

	result, err := svc.Reconcile(context.Background(), []models.ReconcileInstruction{
		{StartDate: "2025-11-17", CollegeName: "College of Engineering"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.UpdatedCount)
	assert.Len(t, repo.periods, 1)
}

func TestExamPeriodServiceReconcileSkipsBadDate(t *testing.T) {
	svc, repo := newExamPeriodFixture()

	result, err := svc.Reconcile(context.Background(), []models.ReconcileInstruction{
		{StartDate: "not-a-date", CollegeName: "College of Engineering"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.UpdatedCount)
	assert.Len(t, repo.periods, 1)
}

func TestExamPeriodServiceReconcileSkipsUnknownCollege(t *testing.T) {
	svc, repo := newExamPeriodFixture()

	result, err := svc.Reconcile(context.Background(), []models.ReconcileInstruction{
		{StartDate: "2025-10-06", CollegeName: "College of Nowhere"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.UpdatedCount)
	assert.Len(t, repo.periods, 1)
}

func TestExamPeriodServiceCreateRejectsInvertedWindow(t *testing.T) {
	svc, _ := newExamPeriodFixture()

	start := time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), ExamPeriodRequest{
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, -3),
		AcademicYear: "2025-2026",
		Category:     "Final",
		TermID:       1,
	})
	require.Error(t, err)
}
