package mail

import (
	"context"
	"log/slog"

	"github.com/SscSPs/gallery_app/internal/core/domain"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
)

// LogMailer writes account emails to the log instead of sending them.
// It stands in for SMTP in development.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

var _ portssvc.MailerSvc = (*LogMailer)(nil)

func (m *LogMailer) SendVerificationEmail(ctx context.Context, user *domain.User, link string) error {
	m.logger.InfoContext(ctx, "Verification email (not sent, SMTP disabled)",
		slog.String("user_id", user.UserID),
		slog.String("to", user.Email),
		slog.String("link", link))
	return nil
}
