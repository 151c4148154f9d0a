package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
)

type availabilityRepoMock struct {
	nextID  int64
	rows    map[int64]models.Availability
	batches int
}

func newAvailabilityRepoMock() *availabilityRepoMock {
	return &availabilityRepoMock{nextID: 1, rows: map[int64]models.Availability{}}
}

func (m *availabilityRepoMock) List(ctx context.Context, filter models.AvailabilityFilter) ([]models.Availability, error) {
	out := make([]models.Availability, 0, len(m.rows))
	for _, row := range m.rows {
		if filter.UserID != nil && row.UserID != *filter.UserID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *availabilityRepoMock) FindByID(ctx context.Context, id int64) (*models.Availability, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (m *availabilityRepoMock) Create(ctx context.Context, availability *models.Availability) error {
	availability.ID = m.nextID
	m.nextID++
	m.rows[availability.ID] = *availability
	return nil
}

func (m *availabilityRepoMock) CreateBatch(ctx context.Context, availabilities []models.Availability) ([]models.Availability, error) {
	m.batches++
	out := make([]models.Availability, 0, len(availabilities))
	for _, availability := range availabilities {
		availability.ID = m.nextID
		m.nextID++
		m.rows[availability.ID] = availability
		out = append(out, availability)
	}
	return out, nil
}

func (m *availabilityRepoMock) Update(ctx context.Context, availability *models.Availability) error {
	m.rows[availability.ID] = *availability
	return nil
}

func (m *availabilityRepoMock) Delete(ctx context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func newAvailabilityHandlerFixture() (*AvailabilityHandler, *availabilityRepoMock) {
	repo := newAvailabilityRepoMock()
	svc := service.NewAvailabilityService(repo, nil, nil)
	return NewAvailabilityHandler(svc), repo
}

func TestAvailabilityHandlerCreateSingleObject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newAvailabilityHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := []byte(`{"day":"2026-05-04T00:00:00Z","time_slot":"09:00-11:00","status":"available","user_id":7}`)
	req, _ := http.NewRequest(http.MethodPost, "/availabilities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.rows, 1)
	assert.Equal(t, 0, repo.batches)
}

func TestAvailabilityHandlerCreateArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newAvailabilityHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := []byte(`[
		{"day":"2026-05-04T00:00:00Z","time_slot":"09:00-11:00","status":"available","user_id":7},
		{"day":"2026-05-05T00:00:00Z","time_slot":"13:00-15:00","status":"unavailable","user_id":7}
	]`)
	req, _ := http.NewRequest(http.MethodPost, "/availabilities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.rows, 2)
	assert.Equal(t, 1, repo.batches)

	var envelope struct {
		Data []models.Availability `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestAvailabilityHandlerCreateEmptyArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newAvailabilityHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/availabilities", bytes.NewReader([]byte(`[]`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.rows)
}

func TestAvailabilityHandlerCreateInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newAvailabilityHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/availabilities", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
