package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// AvailabilityHandler exposes proctor availability endpoints.
type AvailabilityHandler struct {
	availabilities *service.AvailabilityService
}

// NewAvailabilityHandler constructs AvailabilityHandler.
func NewAvailabilityHandler(availabilities *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilities: availabilities}
}

// List godoc
// @Summary List availability slots
// @Tags Availability
// @Produce json
// @Param user_id query int false "Filter by user"
// @Success 200 {object} response.Envelope
// @Router /availabilities [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	filter := models.AvailabilityFilter{UserID: queryInt64(c, "user_id")}
	availabilities, err := h.availabilities.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availabilities, nil)
}

// Get godoc
// @Summary Get an availability slot
// @Tags Availability
// @Produce json
// @Param id path int true "Availability ID"
// @Success 200 {object} response.Envelope
// @Router /availabilities/{id} [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	availability, err := h.availabilities.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability, nil)
}

// Create godoc
// @Summary Declare availability
// @Description Accepts either a single availability object or an array of
// @Description objects. Arrays are inserted atomically.
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.AvailabilityRequest true "Availability payload or array"
// @Success 201 {object} response.Envelope
// @Router /availabilities [post]
func (h *AvailabilityHandler) Create(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var reqs []service.AvailabilityRequest
		if err := json.Unmarshal(body, &reqs); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
		availabilities, err := h.availabilities.CreateBatch(c.Request.Context(), reqs)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, availabilities)
		return
	}

	var req service.AvailabilityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	availability, err := h.availabilities.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, availability)
}

// Update godoc
// @Summary Update an availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path int true "Availability ID"
// @Param payload body service.AvailabilityRequest true "Availability payload"
// @Success 200 {object} response.Envelope
// @Router /availabilities/{id} [put]
func (h *AvailabilityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	availability, err := h.availabilities.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability, nil)
}

// Delete godoc
// @Summary Delete an availability slot
// @Tags Availability
// @Param id path int true "Availability ID"
// @Success 204
// @Router /availabilities/{id} [delete]
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.availabilities.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
