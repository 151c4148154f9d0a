package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// InboxRepository handles persistence for inbox messages and their threaded
// replies.
type InboxRepository struct {
	db *sqlx.DB
}

// NewInboxRepository instantiates an inbox repository.
func NewInboxRepository(db *sqlx.DB) *InboxRepository {
	return &InboxRepository{db: db}
}

const inboxSelect = `
	SELECT message_id, subject, message_body, is_read, is_deleted, sender_id, sender_role_id,
	       receiver_id, receiver_role_id, sender_uuid, receiver_uuid, attachments,
	       created_at, updated_at
	FROM inbox_messages`

// ListMessages returns messages matching the filter, newest first.
func (r *InboxRepository) ListMessages(ctx context.Context, filter models.InboxFilter) ([]models.InboxMessage, error) {
	query := inboxSelect
	var (
		conds []string
		args  []interface{}
	)
	if filter.ReceiverID != nil {
		args = append(args, *filter.ReceiverID)
		conds = append(conds, "receiver_id = $"+strconv.Itoa(len(args)))
	}
	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		conds = append(conds, "is_read = $"+strconv.Itoa(len(args)))
	}
	if filter.IsDeleted != nil {
		args = append(args, *filter.IsDeleted)
		conds = append(conds, "is_deleted = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC" + limitOffset(filter.Page, filter.PageSize)

	var messages []models.InboxMessage
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("list inbox messages: %w", err)
	}
	return messages, nil
}

// FindMessageByID loads one message by identifier.
func (r *InboxRepository) FindMessageByID(ctx context.Context, id int64) (*models.InboxMessage, error) {
	var message models.InboxMessage
	if err := r.db.GetContext(ctx, &message, inboxSelect+" WHERE message_id = $1", id); err != nil {
		return nil, err
	}
	return &message, nil
}

// CreateMessage inserts a message and fills in the generated identifier and
// creation timestamp.
func (r *InboxRepository) CreateMessage(ctx context.Context, message *models.InboxMessage) error {
	const query = `
		INSERT INTO inbox_messages (subject, message_body, is_read, is_deleted, sender_id, sender_role_id,
		                            receiver_id, receiver_role_id, sender_uuid, receiver_uuid, attachments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING message_id, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		message.Subject, message.Body, message.IsRead, message.IsDeleted,
		message.SenderID, message.SenderRoleID, message.ReceiverID, message.ReceiverRoleID,
		message.SenderUUID, message.ReceiverUUID, message.Attachments)
	if err := row.Scan(&message.ID, &message.CreatedAt); err != nil {
		return fmt.Errorf("create inbox message: %w", err)
	}
	return nil
}

// UpdateMessage persists flag and content changes to a message.
func (r *InboxRepository) UpdateMessage(ctx context.Context, message *models.InboxMessage) error {
	const query = `
		UPDATE inbox_messages
		SET subject = :subject, message_body = :message_body, is_read = :is_read,
		    is_deleted = :is_deleted, attachments = :attachments, updated_at = NOW()
		WHERE message_id = :message_id`
	if _, err := r.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("update inbox message: %w", err)
	}
	return nil
}

// DeleteMessage removes a message and its replies.
func (r *InboxRepository) DeleteMessage(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete inbox message tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM inbox_replies WHERE message_id = $1`, id); err != nil {
		return fmt.Errorf("delete inbox replies: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM inbox_messages WHERE message_id = $1`, id); err != nil {
		return fmt.Errorf("delete inbox message: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete inbox message tx: %w", err)
	}
	return nil
}

// ListReplies returns the replies of one message in thread order.
func (r *InboxRepository) ListReplies(ctx context.Context, messageID int64) ([]models.InboxReply, error) {
	const query = `
		SELECT reply_id, message_id, sender_id, body, attachments, created_at
		FROM inbox_replies
		WHERE message_id = $1
		ORDER BY created_at`
	var replies []models.InboxReply
	if err := r.db.SelectContext(ctx, &replies, query, messageID); err != nil {
		return nil, fmt.Errorf("list inbox replies: %w", err)
	}
	return replies, nil
}

// CreateReply appends a reply to a message.
func (r *InboxRepository) CreateReply(ctx context.Context, reply *models.InboxReply) error {
	const query = `
		INSERT INTO inbox_replies (message_id, sender_id, body, attachments)
		VALUES ($1, $2, $3, $4)
		RETURNING reply_id, created_at`
	row := r.db.QueryRowxContext(ctx, query, reply.MessageID, reply.SenderID, reply.Body, reply.Attachments)
	if err := row.Scan(&reply.ID, &reply.CreatedAt); err != nil {
		return fmt.Errorf("create inbox reply: %w", err)
	}
	return nil
}
