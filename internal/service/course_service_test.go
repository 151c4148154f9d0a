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
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type mockCourseRepo struct {
	courses     map[string]models.Course
	assignments map[string][]models.CourseUser
}

func (m *mockCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	out := make([]models.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) Save(ctx context.Context, course *models.Course, assignments []models.CourseUser) error {
	if m.courses == nil {
		m.courses = make(map[string]models.Course)
	}
	if m.assignments == nil {
		m.assignments = make(map[string][]models.CourseUser)
	}
	m.courses[course.ID] = *course
	m.assignments[course.ID] = assignments
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id string) error {
	delete(m.courses, id)
	delete(m.assignments, id)
	return nil
}

func (m *mockCourseRepo) ListAssignments(ctx context.Context, courseID string) ([]models.CourseUser, error) {
	return m.assignments[courseID], nil
}

func (m *mockCourseRepo) ListAllAssignments(ctx context.Context) ([]models.CourseUser, error) {
	var out []models.CourseUser
	for _, cus := range m.assignments {
		out = append(out, cus...)
	}
	return out, nil
}

func (m *mockCourseRepo) FindAssignment(ctx context.Context, courseID string, userID int64) (*models.CourseUser, error) {
	for _, cu := range m.assignments[courseID] {
		if cu.UserID == userID {
			found := cu
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) CreateAssignment(ctx context.Context, cu *models.CourseUser) error {
	m.assignments[cu.CourseID] = append(m.assignments[cu.CourseID], *cu)
	return nil
}

func (m *mockCourseRepo) UpdateAssignment(ctx context.Context, cu *models.CourseUser) error {
	for i, existing := range m.assignments[cu.CourseID] {
		if existing.UserID == cu.UserID {
			m.assignments[cu.CourseID][i] = *cu
		}
	}
	return nil
}

func (m *mockCourseRepo) DeleteAssignment(ctx context.Context, courseID string, userID int64) error {
	kept := m.assignments[courseID][:0]
	for _, cu := range m.assignments[courseID] {
		if cu.UserID != userID {
			kept = append(kept, cu)
		}
	}
	m.assignments[courseID] = kept
	return nil
}

func TestCourseServiceCreateBuildsAggregate(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, validator.New(), zap.NewNop())

	detail, err := svc.Create(context.Background(), CourseRequest{
		ID:      "CS101",
		Name:    "Intro to Computing",
		TermID:  1,
		UserIDs: []int64{7, 8},
		Leaders: []int64{7},
	})
	require.NoError(t, err)
	assert.Equal(t, "CS101", detail.CourseID)
	assert.ElementsMatch(t, []int64{7, 8}, detail.UserIDs)
	assert.Equal(t, []int64{7}, detail.Leaders)
	require.Len(t, repo.assignments["CS101"], 2)
}

func TestCourseServiceCreateRejectsLeaderOutsideAssignments(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CourseRequest{
		ID:      "CS101",
		Name:    "Intro to Computing",
		TermID:  1,
		UserIDs: []int64{7},
		Leaders: []int64{9},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.courses)
}

func TestCourseServiceUpdateReplacesAssignments(t *testing.T) {
	repo := &mockCourseRepo{
		courses: map[string]models.Course{"CS101": {ID: "CS101", Name: "Old", TermID: 1}},
		assignments: map[string][]models.CourseUser{
			"CS101": {{CourseID: "CS101", UserID: 5, IsLeader: true}},
		},
	}
	svc := NewCourseService(repo, validator.New(), zap.NewNop())

	detail, err := svc.Update(context.Background(), "CS101", CourseRequest{
		ID:      "CS101",
		Name:    "Intro to Computing",
		TermID:  2,
		UserIDs: []int64{7},
		Leaders: []int64{7},
	})
	require.NoError(t, err)
	assert.Equal(t, "Intro to Computing", detail.CourseName)
	require.Len(t, repo.assignments["CS101"], 1)
	assert.Equal(t, int64(7), repo.assignments["CS101"][0].UserID)
}

func TestCourseServiceGetMissing(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
