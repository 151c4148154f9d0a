package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examsync/examsync-api/internal/models"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

type mockInboxRepo struct {
	nextMessageID int64
	nextReplyID   int64
	messages      map[int64]models.InboxMessage
	replies       map[int64][]models.InboxReply
}

func newMockInboxRepo() *mockInboxRepo {
	return &mockInboxRepo{
		nextMessageID: 1,
		nextReplyID:   1,
		messages:      map[int64]models.InboxMessage{},
		replies:       map[int64][]models.InboxReply{},
	}
}

func (m *mockInboxRepo) ListMessages(ctx context.Context, filter models.InboxFilter) ([]models.InboxMessage, error) {
	out := make([]models.InboxMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		if filter.ReceiverID != nil && (msg.ReceiverID == nil || *msg.ReceiverID != *filter.ReceiverID) {
			continue
		}
		if filter.IsRead != nil && msg.IsRead != *filter.IsRead {
			continue
		}
		if filter.IsDeleted != nil && msg.IsDeleted != *filter.IsDeleted {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func (m *mockInboxRepo) FindMessageByID(ctx context.Context, id int64) (*models.InboxMessage, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &msg, nil
}

func (m *mockInboxRepo) CreateMessage(ctx context.Context, message *models.InboxMessage) error {
	message.ID = m.nextMessageID
	m.nextMessageID++
	m.messages[message.ID] = *message
	return nil
}

func (m *mockInboxRepo) UpdateMessage(ctx context.Context, message *models.InboxMessage) error {
	m.messages[message.ID] = *message
	return nil
}

func (m *mockInboxRepo) DeleteMessage(ctx context.Context, id int64) error {
	delete(m.messages, id)
	delete(m.replies, id)
	return nil
}

func (m *mockInboxRepo) ListReplies(ctx context.Context, messageID int64) ([]models.InboxReply, error) {
	return m.replies[messageID], nil
}

func (m *mockInboxRepo) CreateReply(ctx context.Context, reply *models.InboxReply) error {
	reply.ID = m.nextReplyID
	m.nextReplyID++
	m.replies[reply.MessageID] = append(m.replies[reply.MessageID], *reply)
	return nil
}

func newInboxFixture(t *testing.T) (*InboxService, *mockInboxRepo, int64) {
	t.Helper()
	repo := newMockInboxRepo()
	svc := NewInboxService(repo, nil, nil)
	receiver := int64(5)
	msg, err := svc.CreateMessage(context.Background(), InboxMessageRequest{
		Subject:    strPtr("Proctor swap"),
		Body:       strPtr("Can you cover the morning sitting?"),
		SenderID:   int64Ptr(3),
		ReceiverID: &receiver,
	})
	require.NoError(t, err)
	return svc, repo, msg.ID
}

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

func TestInboxPatchOnlyTouchesSuppliedFields(t *testing.T) {
	svc, _, id := newInboxFixture(t)

	patched, err := svc.PatchMessage(context.Background(), id, InboxMessagePatch{IsRead: boolPtr(true)})
	require.NoError(t, err)

	assert.True(t, patched.IsRead)
	assert.False(t, patched.IsDeleted)
	require.NotNil(t, patched.Subject)
	assert.Equal(t, "Proctor swap", *patched.Subject)
}

func TestInboxPatchSoftDelete(t *testing.T) {
	svc, repo, id := newInboxFixture(t)

	patched, err := svc.PatchMessage(context.Background(), id, InboxMessagePatch{IsDeleted: boolPtr(true)})
	require.NoError(t, err)

	assert.True(t, patched.IsDeleted)
	// Soft deletion keeps the row.
	assert.Contains(t, repo.messages, id)
}

func TestInboxDeleteRemovesMessageAndReplies(t *testing.T) {
	svc, repo, id := newInboxFixture(t)

	_, err := svc.CreateReply(context.Background(), id, InboxReplyRequest{
		SenderID: int64Ptr(5),
		Body:     strPtr("Yes, I can take it."),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMessage(context.Background(), id))
	assert.NotContains(t, repo.messages, id)
	assert.Empty(t, repo.replies[id])
}

func TestInboxCreateMessageRequiresReceiver(t *testing.T) {
	svc := NewInboxService(newMockInboxRepo(), nil, nil)

	_, err := svc.CreateMessage(context.Background(), InboxMessageRequest{Body: strPtr("hello")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestInboxReplyToMissingMessage(t *testing.T) {
	svc := NewInboxService(newMockInboxRepo(), nil, nil)

	_, err := svc.CreateReply(context.Background(), 99, InboxReplyRequest{Body: strPtr("hi")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
