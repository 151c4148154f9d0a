package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// RoleHandler exposes role, role-assignment and assignment-history endpoints.
type RoleHandler struct {
	roles *service.RoleService
}

// NewRoleHandler constructs RoleHandler.
func NewRoleHandler(roles *service.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// ListRoles godoc
// @Summary List roles
// @Tags Roles
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roles.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roles, nil)
}

// GetRole godoc
// @Summary Get a role
// @Tags Roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} response.Envelope
// @Router /roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	role, err := h.roles.GetRole(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, role, nil)
}

// CreateRole godoc
// @Summary Create a role
// @Tags Roles
// @Accept json
// @Produce json
// @Param payload body service.RoleRequest true "Role payload"
// @Success 201 {object} response.Envelope
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req service.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	role, err := h.roles.CreateRole(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, role)
}

// UpdateRole godoc
// @Summary Update a role
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path int true "Role ID"
// @Param payload body service.RoleRequest true "Role payload"
// @Success 200 {object} response.Envelope
// @Router /roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	role, err := h.roles.UpdateRole(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, role, nil)
}

// DeleteRole godoc
// @Summary Delete a role
// @Tags Roles
// @Param id path int true "Role ID"
// @Success 204
// @Router /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.roles.DeleteRole(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListUserRoles godoc
// @Summary List role assignments
// @Tags Roles
// @Produce json
// @Param user_id query int false "Filter by user"
// @Param role_id query int false "Filter by role"
// @Success 200 {object} response.Envelope
// @Router /user-roles [get]
func (h *RoleHandler) ListUserRoles(c *gin.Context) {
	filter := models.UserRoleFilter{
		UserID: queryInt64(c, "user_id"),
		RoleID: queryInt64(c, "role_id"),
	}
	userRoles, err := h.roles.ListUserRoles(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, userRoles, nil)
}

// GetUserRole godoc
// @Summary Get a role assignment
// @Tags Roles
// @Produce json
// @Param id path int true "User role ID"
// @Success 200 {object} response.Envelope
// @Router /user-roles/{id} [get]
func (h *RoleHandler) GetUserRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userRole, err := h.roles.GetUserRole(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, userRole, nil)
}

// CreateUserRole godoc
// @Summary Assign a role to a user
// @Tags Roles
// @Accept json
// @Produce json
// @Param payload body service.UserRoleRequest true "User role payload"
// @Success 201 {object} response.Envelope
// @Router /user-roles [post]
func (h *RoleHandler) CreateUserRole(c *gin.Context) {
	var req service.UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	userRole, err := h.roles.CreateUserRole(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, userRole)
}

// UpdateUserRole godoc
// @Summary Update a role assignment
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path int true "User role ID"
// @Param payload body service.UserRoleRequest true "User role payload"
// @Success 200 {object} response.Envelope
// @Router /user-roles/{id} [put]
func (h *RoleHandler) UpdateUserRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	userRole, err := h.roles.UpdateUserRole(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, userRole, nil)
}

// DeleteUserRole godoc
// @Summary Revoke a role assignment
// @Tags Roles
// @Param id path int true "User role ID"
// @Success 204
// @Router /user-roles/{id} [delete]
func (h *RoleHandler) DeleteUserRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.roles.DeleteUserRole(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListHistory godoc
// @Summary List role assignment history
// @Tags Roles
// @Produce json
// @Param user_role_id query int false "Filter by role assignment"
// @Success 200 {object} response.Envelope
// @Router /user-roles/history [get]
func (h *RoleHandler) ListHistory(c *gin.Context) {
	history, err := h.roles.ListHistory(c.Request.Context(), queryInt64(c, "user_role_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}
