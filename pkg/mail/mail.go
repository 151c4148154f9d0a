package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/examsync/examsync-api/pkg/config"
)

// Message is a plain-text outbound email.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	Body      string
}

// Mailer delivers messages through a configured provider. Delivery is
// synchronous: the password-reset flow reports transport failures to the
// caller in the same request.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New selects the provider from configuration. Unknown providers fall back to
// the console mailer so a missing API key never breaks local development.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendgridMailer(cfg, logger)
	default:
		return NewConsoleMailer(logger)
	}
}

// ConsoleMailer logs messages instead of delivering them.
type ConsoleMailer struct {
	logger *zap.Logger
}

// NewConsoleMailer constructs the logging mailer.
func NewConsoleMailer(logger *zap.Logger) *ConsoleMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleMailer{logger: logger}
}

// Send writes the message to the application log.
func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("outbound email",
		zap.String("to", msg.ToAddress),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
