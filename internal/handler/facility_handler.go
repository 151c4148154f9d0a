package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// FacilityHandler exposes building and room endpoints.
type FacilityHandler struct {
	facilities *service.FacilityService
}

// NewFacilityHandler constructs FacilityHandler.
func NewFacilityHandler(facilities *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilities: facilities}
}

// ListBuildings godoc
// @Summary List buildings
// @Tags Facilities
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /buildings [get]
func (h *FacilityHandler) ListBuildings(c *gin.Context) {
	buildings, err := h.facilities.ListBuildings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, buildings, nil)
}

// GetBuilding godoc
// @Summary Get a building
// @Tags Facilities
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id} [get]
func (h *FacilityHandler) GetBuilding(c *gin.Context) {
	building, err := h.facilities.GetBuilding(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, building, nil)
}

// CreateBuilding godoc
// @Summary Create a building
// @Tags Facilities
// @Accept json
// @Produce json
// @Param payload body service.BuildingRequest true "Building payload"
// @Success 201 {object} response.Envelope
// @Router /buildings [post]
func (h *FacilityHandler) CreateBuilding(c *gin.Context) {
	var req service.BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	building, err := h.facilities.CreateBuilding(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, building)
}

// UpdateBuilding godoc
// @Summary Update a building
// @Tags Facilities
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Param payload body service.BuildingRequest true "Building payload"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id} [put]
func (h *FacilityHandler) UpdateBuilding(c *gin.Context) {
	var req service.BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	building, err := h.facilities.UpdateBuilding(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, building, nil)
}

// DeleteBuilding godoc
// @Summary Delete a building
// @Tags Facilities
// @Param id path string true "Building ID"
// @Success 204
// @Router /buildings/{id} [delete]
func (h *FacilityHandler) DeleteBuilding(c *gin.Context) {
	if err := h.facilities.DeleteBuilding(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListRooms godoc
// @Summary List rooms
// @Tags Facilities
// @Produce json
// @Param building_id query string false "Filter by building"
// @Param room_type query string false "Filter by room type"
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *FacilityHandler) ListRooms(c *gin.Context) {
	filter := models.RoomFilter{
		BuildingID: c.Query("building_id"),
		Type:       c.Query("room_type"),
	}
	rooms, err := h.facilities.ListRooms(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// GetRoom godoc
// @Summary Get a room
// @Tags Facilities
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [get]
func (h *FacilityHandler) GetRoom(c *gin.Context) {
	room, err := h.facilities.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// CreateRoom godoc
// @Summary Create a room
// @Tags Facilities
// @Accept json
// @Produce json
// @Param payload body service.RoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /rooms [post]
func (h *FacilityHandler) CreateRoom(c *gin.Context) {
	var req service.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.facilities.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// UpdateRoom godoc
// @Summary Update a room
// @Tags Facilities
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param payload body service.RoomRequest true "Room payload"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [put]
func (h *FacilityHandler) UpdateRoom(c *gin.Context) {
	var req service.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.facilities.UpdateRoom(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// DeleteRoom godoc
// @Summary Delete a room
// @Tags Facilities
// @Param id path string true "Room ID"
// @Success 204
// @Router /rooms/{id} [delete]
func (h *FacilityHandler) DeleteRoom(c *gin.Context) {
	if err := h.facilities.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
