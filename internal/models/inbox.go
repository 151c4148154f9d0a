package models

import (
	"encoding/json"
	"time"
)

// InboxMessage is an internal message between two users, optionally tagged
// with the role each party acted under. Attachments are opaque JSON from the
// frontend uploader.
type InboxMessage struct {
	ID             int64           `db:"message_id" json:"message_id"`
	Subject        *string         `db:"subject" json:"subject,omitempty"`
	Body           *string         `db:"message_body" json:"message_body,omitempty"`
	IsRead         bool            `db:"is_read" json:"is_read"`
	IsDeleted      bool            `db:"is_deleted" json:"is_deleted"`
	SenderID       *int64          `db:"sender_id" json:"sender_id,omitempty"`
	SenderRoleID   *int64          `db:"sender_role_id" json:"sender_role_id,omitempty"`
	ReceiverID     *int64          `db:"receiver_id" json:"receiver_id,omitempty"`
	ReceiverRoleID *int64          `db:"receiver_role_id" json:"receiver_role_id,omitempty"`
	SenderUUID     *string         `db:"sender_uuid" json:"sender_uuid,omitempty"`
	ReceiverUUID   *string         `db:"receiver_uuid" json:"receiver_uuid,omitempty"`
	Attachments    json.RawMessage `db:"attachments" json:"attachments,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

// InboxReply is one threaded reply to an inbox message.
type InboxReply struct {
	ID          int64           `db:"reply_id" json:"reply_id"`
	MessageID   int64           `db:"message_id" json:"message_id"`
	SenderID    *int64          `db:"sender_id" json:"sender_id,omitempty"`
	Body        *string         `db:"body" json:"body,omitempty"`
	Attachments json.RawMessage `db:"attachments" json:"attachments,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// InboxFilter narrows inbox listings.
type InboxFilter struct {
	ReceiverID *int64
	IsRead     *bool
	IsDeleted  *bool
	Page       int
	PageSize   int
}
