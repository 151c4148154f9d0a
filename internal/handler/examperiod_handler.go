package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// ExamPeriodHandler exposes exam period endpoints, including the bulk
// reconciliation used by the scheduling calendar.
type ExamPeriodHandler struct {
	periods *service.ExamPeriodService
}

// NewExamPeriodHandler constructs ExamPeriodHandler.
func NewExamPeriodHandler(periods *service.ExamPeriodService) *ExamPeriodHandler {
	return &ExamPeriodHandler{periods: periods}
}

// List godoc
// @Summary List exam periods
// @Tags ExamPeriods
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exam-periods [get]
func (h *ExamPeriodHandler) List(c *gin.Context) {
	periods, err := h.periods.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, nil)
}

// Get godoc
// @Summary Get an exam period
// @Tags ExamPeriods
// @Produce json
// @Param id path int true "Exam period ID"
// @Success 200 {object} response.Envelope
// @Router /exam-periods/{id} [get]
func (h *ExamPeriodHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	period, err := h.periods.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, period, nil)
}

// Create godoc
// @Summary Create an exam period
// @Tags ExamPeriods
// @Accept json
// @Produce json
// @Param payload body service.ExamPeriodRequest true "Exam period payload"
// @Success 201 {object} response.Envelope
// @Router /exam-periods [post]
func (h *ExamPeriodHandler) Create(c *gin.Context) {
	var req service.ExamPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	period, err := h.periods.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, period)
}

// Update godoc
// @Summary Update an exam period
// @Tags ExamPeriods
// @Accept json
// @Produce json
// @Param id path int true "Exam period ID"
// @Param payload body service.ExamPeriodRequest true "Exam period payload"
// @Success 200 {object} response.Envelope
// @Router /exam-periods/{id} [put]
func (h *ExamPeriodHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.ExamPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	period, err := h.periods.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, period, nil)
}

// Delete godoc
// @Summary Delete an exam period
// @Tags ExamPeriods
// @Param id path int true "Exam period ID"
// @Success 204
// @Router /exam-periods/{id} [delete]
func (h *ExamPeriodHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.periods.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reconcile godoc
// @Summary Bulk-reconcile exam period college assignments
// @Tags ExamPeriods
// @Accept json
// @Produce json
// @Param payload body []models.ReconcileInstruction true "Reconcile instructions"
// @Success 200 {object} response.Envelope
// @Router /exam-periods/bulk [put]
func (h *ExamPeriodHandler) Reconcile(c *gin.Context) {
	var instructions []models.ReconcileInstruction
	if err := c.ShouldBindJSON(&instructions); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if len(instructions) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "updates required"))
		return
	}
	result, err := h.periods.Reconcile(c.Request.Context(), instructions)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
