package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/examsync/examsync-api/internal/models"
	"github.com/examsync/examsync-api/pkg/config"
	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/mail"
)

type mockAuthUserRepo struct {
	users     map[int64]models.User
	passwords map[int64]string
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.passwords == nil {
		m.passwords = make(map[int64]string)
	}
	m.passwords[id] = passwordHash
	return nil
}

type mockResetTokenStore struct {
	tokens  map[int64]string
	deleted []int64
}

func (m *mockResetTokenStore) Store(ctx context.Context, userID int64, token string) error {
	if m.tokens == nil {
		m.tokens = make(map[int64]string)
	}
	m.tokens[userID] = token
	return nil
}

func (m *mockResetTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	if token, ok := m.tokens[userID]; ok {
		return token, nil
	}
	return "", appErrors.ErrCacheMiss
}

func (m *mockResetTokenStore) Delete(ctx context.Context, userID int64) error {
	m.deleted = append(m.deleted, userID)
	delete(m.tokens, userID)
	return nil
}

type mockMailer struct {
	sent []mail.Message
	err  error
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newAuthFixture(mailer mail.Mailer) (*AuthService, *mockAuthUserRepo, *mockResetTokenStore) {
	users := &mockAuthUserRepo{users: map[int64]models.User{
		7: {ID: 7, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.edu"},
	}}
	tokens := &mockResetTokenStore{}
	cfg := config.AuthConfig{TokenSecret: "secret", ResetTokenTTL: 15 * time.Minute}
	mailCfg := config.MailConfig{FrontendURL: "http://localhost:5173"}
	svc := NewAuthService(users, tokens, mailer, cfg, mailCfg, validator.New(), zap.NewNop())
	return svc, users, tokens
}

func TestAuthServiceLoginIssuesPlaceholderToken(t *testing.T) {
	svc, _, _ := newAuthFixture(&mockMailer{})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "grace@example.edu", Password: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "mock-token-for-7", resp.Token)
	assert.Equal(t, int64(7), resp.UserID)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(&mockMailer{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.edu"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRequestPasswordReset(t *testing.T) {
	mailer := &mockMailer{}
	svc, _, tokens := newAuthFixture(mailer)

	err := svc.RequestPasswordReset(context.Background(), models.PasswordResetRequest{Email: "grace@example.edu"})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "grace@example.edu", mailer.sent[0].ToAddress)
	assert.NotEmpty(t, tokens.tokens[7])
	assert.Contains(t, mailer.sent[0].Body, tokens.tokens[7])
}

func TestAuthServiceRequestPasswordResetMailFailure(t *testing.T) {
	mailer := &mockMailer{err: assert.AnError}
	svc, _, _ := newAuthFixture(mailer)

	err := svc.RequestPasswordReset(context.Background(), models.PasswordResetRequest{Email: "grace@example.edu"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMailFailure.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceConfirmPasswordReset(t *testing.T) {
	svc, users, tokens := newAuthFixture(&mockMailer{})
	require.NoError(t, tokens.Store(context.Background(), 7, "tok-123"))

	err := svc.ConfirmPasswordReset(context.Background(), models.PasswordResetConfirm{
		UserID: 7, Token: "tok-123", NewPassword: "hunter22",
	})
	require.NoError(t, err)
	assert.Contains(t, tokens.deleted, int64(7))
	require.NotEmpty(t, users.passwords[7])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.passwords[7]), []byte("hunter22")))
}

func TestAuthServiceConfirmPasswordResetWrongToken(t *testing.T) {
	svc, users, tokens := newAuthFixture(&mockMailer{})
	require.NoError(t, tokens.Store(context.Background(), 7, "tok-123"))

	err := svc.ConfirmPasswordReset(context.Background(), models.PasswordResetConfirm{
		UserID: 7, Token: "wrong", NewPassword: "hunter22",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, users.passwords)
}

func TestAuthServiceConfirmPasswordResetUnknownUser(t *testing.T) {
	svc, _, tokens := newAuthFixture(&mockMailer{})
	require.NoError(t, tokens.Store(context.Background(), 99, "tok-123"))

	err := svc.ConfirmPasswordReset(context.Background(), models.PasswordResetConfirm{
		UserID: 99, Token: "tok-123", NewPassword: "hunter22",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceConfirmPasswordResetTokenSingleUse(t *testing.T) {
	svc, _, tokens := newAuthFixture(&mockMailer{})
	require.NoError(t, tokens.Store(context.Background(), 7, "tok-123"))
	confirm := models.PasswordResetConfirm{UserID: 7, Token: "tok-123", NewPassword: "hunter22"}

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), confirm))

	err := svc.ConfirmPasswordReset(context.Background(), confirm)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceConfirmPasswordResetExpiredToken(t *testing.T) {
	svc, _, _ := newAuthFixture(&mockMailer{})

	err := svc.ConfirmPasswordReset(context.Background(), models.PasswordResetConfirm{
		UserID: 7, Token: "tok-123", NewPassword: "hunter22",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
