package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/internal/service"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// InboxHandler exposes inbox message and reply endpoints.
type InboxHandler struct {
	inbox *service.InboxService
}

// NewInboxHandler constructs InboxHandler.
func NewInboxHandler(inbox *service.InboxService) *InboxHandler {
	return &InboxHandler{inbox: inbox}
}

// ListMessages godoc
// @Summary List inbox messages
// @Tags Inbox
// @Produce json
// @Param receiver_id query int false "Filter by receiver"
// @Param is_read query bool false "Filter by read flag"
// @Param is_deleted query bool false "Filter by soft-delete flag"
// @Success 200 {object} response.Envelope
// @Router /inbox [get]
func (h *InboxHandler) ListMessages(c *gin.Context) {
	filter := models.InboxFilter{
		ReceiverID: queryInt64(c, "receiver_id"),
		IsRead:     queryBool(c, "is_read"),
		IsDeleted:  queryBool(c, "is_deleted"),
	}
	filter.Page, filter.PageSize = pageParams(c)
	messages, err := h.inbox.ListMessages(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages, nil)
}

// GetMessage godoc
// @Summary Get an inbox message
// @Tags Inbox
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} response.Envelope
// @Router /inbox/{id} [get]
func (h *InboxHandler) GetMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	message, err := h.inbox.GetMessage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, message, nil)
}

// CreateMessage godoc
// @Summary Send an inbox message
// @Tags Inbox
// @Accept json
// @Produce json
// @Param payload body service.InboxMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Router /inbox [post]
func (h *InboxHandler) CreateMessage(c *gin.Context) {
	var req service.InboxMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	message, err := h.inbox.CreateMessage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// PatchMessage godoc
// @Summary Patch an inbox message
// @Description Only fields present in the payload change. Marking a message
// @Description read or soft-deleting it goes through this endpoint.
// @Tags Inbox
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Param payload body service.InboxMessagePatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /inbox/{id} [patch]
func (h *InboxHandler) PatchMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch service.InboxMessagePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	message, err := h.inbox.PatchMessage(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, message, nil)
}

// DeleteMessage godoc
// @Summary Permanently delete an inbox message
// @Tags Inbox
// @Param id path int true "Message ID"
// @Success 204
// @Router /inbox/{id} [delete]
func (h *InboxHandler) DeleteMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.inbox.DeleteMessage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListReplies godoc
// @Summary List replies to a message
// @Tags Inbox
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} response.Envelope
// @Router /inbox/{id}/replies [get]
func (h *InboxHandler) ListReplies(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replies, err := h.inbox.ListReplies(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, replies, nil)
}

// CreateReply godoc
// @Summary Reply to a message
// @Tags Inbox
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Param payload body service.InboxReplyRequest true "Reply payload"
// @Success 201 {object} response.Envelope
// @Router /inbox/{id}/replies [post]
func (h *InboxHandler) CreateReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.InboxReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reply, err := h.inbox.CreateReply(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reply)
}
