package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examsync/examsync-api/internal/service"
)

func newExamPeriodHandlerFixture() *ExamPeriodHandler {
	// The rejection paths under test never reach the repository.
	svc := service.NewExamPeriodService(nil, nil, nil, nil)
	return NewExamPeriodHandler(svc)
}

func TestExamPeriodHandlerReconcileEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExamPeriodHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/exam-periods/bulk", bytes.NewReader([]byte(`[]`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Reconcile(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "updates required", envelope.Error.Message)
}

func TestExamPeriodHandlerReconcileInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExamPeriodHandlerFixture()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/exam-periods/bulk", bytes.NewReader([]byte(`{"updates": "nope"}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Reconcile(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
