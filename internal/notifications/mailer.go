package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"staybook/pkg/logger"
)

// Mailer sends plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	addr string
	from string
	log  *logger.Logger
}

// NewSMTPMailer sends through a plain SMTP relay without authentication,
// suitable for an in-cluster relay that handles upstream delivery.
func NewSMTPMailer(host string, port int, from string, log *logger.Logger) Mailer {
	return &smtpMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		log:  log,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	m.log.Info("email sent", "to", to, "subject", subject)
	return nil
}
