package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/SscSPs/gallery_app/internal/core/domain"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	AppName  string
}

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers account emails through an SMTP relay.
type SMTPMailer struct {
	cfg  SMTPConfig
	send sendFunc
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.AppName == "" {
		cfg.AppName = "Gallery"
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

var _ portssvc.MailerSvc = (*SMTPMailer)(nil)

func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, user *domain.User, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, body := verificationEmail(m.cfg.AppName, user, link)
	return m.deliver(user.Email, subject, body)
}

func (m *SMTPMailer) deliver(to, subject, body string) error {
	headers := []string{
		fmt.Sprintf("From: %s", m.cfg.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}
	message := strings.Join(headers, "\r\n")

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", addr, err)
	}
	return nil
}

func verificationEmail(appName string, user *domain.User, link string) (string, string) {
	subject := fmt.Sprintf("%s - Verify Your Email Address", appName)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for signing up for %s! To complete your registration, please verify your email address by following the link below:\n\n"+
			"%s\n\n"+
			"If you did not create an account, please ignore this email.\n\n"+
			"Best regards,\n"+
			"The %s Team",
		user.Username, appName, link, appName)
	return subject, body
}
