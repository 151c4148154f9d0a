package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type inboxRepository interface {
	ListMessages(ctx context.Context, filter models.InboxFilter) ([]models.InboxMessage, error)
	FindMessageByID(ctx context.Context, id int64) (*models.InboxMessage, error)
	CreateMessage(ctx context.Context, message *models.InboxMessage) error
	UpdateMessage(ctx context.Context, message *models.InboxMessage) error
	DeleteMessage(ctx context.Context, id int64) error
	ListReplies(ctx context.Context, messageID int64) ([]models.InboxReply, error)
	CreateReply(ctx context.Context, reply *models.InboxReply) error
}

// InboxMessageRequest holds the payload for sending a message.
type InboxMessageRequest struct {
	Subject        *string         `json:"subject"`
	Body           *string         `json:"message_body"`
	SenderID       *int64          `json:"sender_id"`
	SenderRoleID   *int64          `json:"sender_role_id"`
	ReceiverID     *int64          `json:"receiver_id" validate:"required"`
	ReceiverRoleID *int64          `json:"receiver_role_id"`
	SenderUUID     *string         `json:"sender_uuid"`
	ReceiverUUID   *string         `json:"receiver_uuid"`
	Attachments    json.RawMessage `json:"attachments"`
}

// InboxMessagePatch holds the partial-update payload: only supplied fields
// change. Marking read and soft-deleting both go through here.
type InboxMessagePatch struct {
	Subject     *string         `json:"subject"`
	Body        *string         `json:"message_body"`
	IsRead      *bool           `json:"is_read"`
	IsDeleted   *bool           `json:"is_deleted"`
	Attachments json.RawMessage `json:"attachments"`
}

// InboxReplyRequest holds the payload for replying to a message.
type InboxReplyRequest struct {
	SenderID    *int64          `json:"sender_id"`
	Body        *string         `json:"body" validate:"required"`
	Attachments json.RawMessage `json:"attachments"`
}

// InboxService handles internal messaging use-cases.
type InboxService struct {
	repo      inboxRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInboxService constructs the inbox service.
func NewInboxService(repo inboxRepository, validate *validator.Validate, logger *zap.Logger) *InboxService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InboxService{repo: repo, validator: validate, logger: logger}
}

// ListMessages returns messages matching the filter.
func (s *InboxService) ListMessages(ctx context.Context, filter models.InboxFilter) ([]models.InboxMessage, error) {
	messages, err := s.repo.ListMessages(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inbox messages")
	}
	return messages, nil
}

// GetMessage returns one message.
func (s *InboxService) GetMessage(ctx context.Context, id int64) (*models.InboxMessage, error) {
	message, err := s.repo.FindMessageByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inbox message not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inbox message")
	}
	return message, nil
}

// CreateMessage sends a message.
func (s *InboxService) CreateMessage(ctx context.Context, req InboxMessageRequest) (*models.InboxMessage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inbox message payload")
	}
	message := &models.InboxMessage{
		Subject:        req.Subject,
		Body:           req.Body,
		SenderID:       req.SenderID,
		SenderRoleID:   req.SenderRoleID,
		ReceiverID:     req.ReceiverID,
		ReceiverRoleID: req.ReceiverRoleID,
		SenderUUID:     req.SenderUUID,
		ReceiverUUID:   req.ReceiverUUID,
		Attachments:    req.Attachments,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create inbox message")
	}
	return message, nil
}

// PatchMessage applies a partial update to a message.
func (s *InboxService) PatchMessage(ctx context.Context, id int64, patch InboxMessagePatch) (*models.InboxMessage, error) {
	message, err := s.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Subject != nil {
		message.Subject = patch.Subject
	}
	if patch.Body != nil {
		message.Body = patch.Body
	}
	if patch.IsRead != nil {
		message.IsRead = *patch.IsRead
	}
	if patch.IsDeleted != nil {
		message.IsDeleted = *patch.IsDeleted
	}
	if patch.Attachments != nil {
		message.Attachments = patch.Attachments
	}
	if err := s.repo.UpdateMessage(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update inbox message")
	}
	return s.GetMessage(ctx, id)
}

// DeleteMessage permanently removes a message and its replies. Soft deletion
// is a PATCH setting is_deleted.
func (s *InboxService) DeleteMessage(ctx context.Context, id int64) error {
	if _, err := s.GetMessage(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMessage(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete inbox message")
	}
	return nil
}

// ListReplies returns the replies of one message.
func (s *InboxService) ListReplies(ctx context.Context, messageID int64) ([]models.InboxReply, error) {
	if _, err := s.GetMessage(ctx, messageID); err != nil {
		return nil, err
	}
	replies, err := s.repo.ListReplies(ctx, messageID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inbox replies")
	}
	return replies, nil
}

// CreateReply appends a reply to a message.
func (s *InboxService) CreateReply(ctx context.Context, messageID int64, req InboxReplyRequest) (*models.InboxReply, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inbox reply payload")
	}
	if _, err := s.GetMessage(ctx, messageID); err != nil {
		return nil, err
	}
	reply := &models.InboxReply{
		MessageID:   messageID,
		SenderID:    req.SenderID,
		Body:        req.Body,
		Attachments: req.Attachments,
	}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create inbox reply")
	}
	return reply, nil
}
