package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// ModalityHandler exposes exam modality endpoints.
type ModalityHandler struct {
	modalities *service.ModalityService
}

// NewModalityHandler constructs ModalityHandler.
func NewModalityHandler(modalities *service.ModalityService) *ModalityHandler {
	return &ModalityHandler{modalities: modalities}
}

// List godoc
// @Summary List exam modalities
// @Tags Modalities
// @Produce json
// @Param course_id query string false "Filter by course"
// @Param program_id query string false "Filter by program"
// @Param section_name query string false "Filter by section name"
// @Param modality_type query string false "Filter by modality type"
// @Param room_type query string false "Filter by required room type"
// @Success 200 {object} response.Envelope
// @Router /modalities [get]
func (h *ModalityHandler) List(c *gin.Context) {
	filter := models.ModalityFilter{
		CourseID:    c.Query("course_id"),
		ProgramID:   c.Query("program_id"),
		SectionName: c.Query("section_name"),
		Type:        c.Query("modality_type"),
		RoomType:    c.Query("room_type"),
	}
	filter.Page, filter.PageSize = pageParams(c)
	modalities, err := h.modalities.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modalities, nil)
}

// Get godoc
// @Summary Get an exam modality
// @Tags Modalities
// @Produce json
// @Param id path int true "Modality ID"
// @Success 200 {object} response.Envelope
// @Router /modalities/{id} [get]
func (h *ModalityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	modality, err := h.modalities.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modality, nil)
}

// Create godoc
// @Summary Declare an exam modality
// @Tags Modalities
// @Accept json
// @Produce json
// @Param payload body service.ModalityRequest true "Modality payload"
// @Success 201 {object} response.Envelope
// @Router /modalities [post]
func (h *ModalityHandler) Create(c *gin.Context) {
	var req service.ModalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	modality, err := h.modalities.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, modality)
}

// Update godoc
// @Summary Update an exam modality
// @Tags Modalities
// @Accept json
// @Produce json
// @Param id path int true "Modality ID"
// @Param payload body service.ModalityRequest true "Modality payload"
// @Success 200 {object} response.Envelope
// @Router /modalities/{id} [put]
func (h *ModalityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.ModalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	modality, err := h.modalities.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modality, nil)
}

// Delete godoc
// @Summary Delete an exam modality
// @Tags Modalities
// @Param id path int true "Modality ID"
// @Success 204
// @Router /modalities/{id} [delete]
func (h *ModalityHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.modalities.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
