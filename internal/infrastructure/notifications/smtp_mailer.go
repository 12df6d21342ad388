package notifications

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"

	"github.com/glodetung92/ECSite/domain"
)

// SMTPMailer implements domain.Mailer over plain SMTP. The raw reset
// token travels only inside the message body; it is never logged.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
	resetURL string
	logger   *zap.Logger
}

// NewSMTPMailer creates a new SMTP-backed mailer. With no host
// configured it degrades to a dev mailer that records that a delivery
// happened without the token value.
func NewSMTPMailer(host string, port int, from, password, resetURL string, logger *zap.Logger) domain.Mailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		resetURL: resetURL,
		logger:   logger,
	}
}

// SendPasswordReset implements domain.Mailer
func (m *SMTPMailer) SendPasswordReset(to, rawToken string) error {
	if m.host == "" {
		m.logger.Info("smtp not configured, skipping reset mail delivery",
			zap.String("to", to))
		return nil
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = "Reset your password"
	e.HTML = []byte(fmt.Sprintf(
		`<p>A password reset was requested for this address.</p>
<p><a href="%s?token=%s">Reset your password</a></p>
<p>The link expires in 10 minutes. If you did not request this, ignore this mail.</p>`,
		m.resetURL, rawToken,
	))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	m.logger.Info("reset mail delivered", zap.String("to", to))
	return nil
}
