package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// ExamDetailHandler exposes exam sitting endpoints.
type ExamDetailHandler struct {
	details *service.ExamDetailService
}

// NewExamDetailHandler constructs ExamDetailHandler.
func NewExamDetailHandler(details *service.ExamDetailService) *ExamDetailHandler {
	return &ExamDetailHandler{details: details}
}

func examDetailFilterFromQuery(c *gin.Context) models.ExamDetailFilter {
	filter := models.ExamDetailFilter{
		RoomID:   c.Query("room_id"),
		ExamDate: c.Query("exam_date"),
	}
	filter.Page, filter.PageSize = pageParams(c)
	return filter
}

// List godoc
// @Summary List exam details
// @Tags ExamDetails
// @Produce json
// @Param room_id query string false "Filter by room"
// @Param exam_date query string false "Filter by exam date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /exam-details [get]
func (h *ExamDetailHandler) List(c *gin.Context) {
	details, err := h.details.List(c.Request.Context(), examDetailFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}

// Get godoc
// @Summary Get an exam detail
// @Tags ExamDetails
// @Produce json
// @Param id path int true "Exam detail ID"
// @Success 200 {object} response.Envelope
// @Router /exam-details/{id} [get]
func (h *ExamDetailHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.details.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Schedule an exam sitting
// @Tags ExamDetails
// @Accept json
// @Produce json
// @Param payload body service.ExamDetailRequest true "Exam detail payload"
// @Success 201 {object} response.Envelope
// @Router /exam-details [post]
func (h *ExamDetailHandler) Create(c *gin.Context) {
	var req service.ExamDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.details.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// Update godoc
// @Summary Update an exam sitting
// @Tags ExamDetails
// @Accept json
// @Produce json
// @Param id path int true "Exam detail ID"
// @Param payload body service.ExamDetailRequest true "Exam detail payload"
// @Success 200 {object} response.Envelope
// @Router /exam-details/{id} [put]
func (h *ExamDetailHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.ExamDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.details.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Delete godoc
// @Summary Delete an exam sitting
// @Tags ExamDetails
// @Param id path int true "Exam detail ID"
// @Success 204
// @Router /exam-details/{id} [delete]
func (h *ExamDetailHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.details.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
