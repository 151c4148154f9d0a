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

type mockTermRepo struct {
	terms  map[int64]models.Term
	nextID int64
}

func (m *mockTermRepo) List(ctx context.Context) ([]models.Term, error) {
	out := make([]models.Term, 0, len(m.terms))
	for _, term := range m.terms {
		out = append(out, term)
	}
	return out, nil
}

func (m *mockTermRepo) FindByID(ctx context.Context, id int64) (*models.Term, error) {
	if term, ok := m.terms[id]; ok {
		return &term, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTermRepo) Create(ctx context.Context, term *models.Term) error {
	if m.terms == nil {
		m.terms = make(map[int64]models.Term)
	}
	m.nextID++
	term.ID = m.nextID
	m.terms[term.ID] = *term
	return nil
}

func (m *mockTermRepo) Update(ctx context.Context, term *models.Term) error {
	m.terms[term.ID] = *term
	return nil
}

func (m *mockTermRepo) Delete(ctx context.Context, id int64) error {
	delete(m.terms, id)
	return nil
}

func TestTermServiceCreate(t *testing.T) {
	repo := &mockTermRepo{}
	svc := NewTermService(repo, validator.New(), zap.NewNop())

	term, err := svc.Create(context.Background(), TermRequest{Name: "1st Semester"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), term.ID)
	assert.Equal(t, "1st Semester", term.Name)
}

func TestTermServiceCreateRejectsBlankName(t *testing.T) {
	repo := &mockTermRepo{}
	svc := NewTermService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), TermRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.terms)
}

func TestTermServiceUpdateMissing(t *testing.T) {
	repo := &mockTermRepo{}
	svc := NewTermService(repo, validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), 99, TermRequest{Name: "Summer"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
