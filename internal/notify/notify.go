// Package notify sends customer emails over SMTP.
package notify

import (
	"fmt"
	"net/smtp"

	"wallet_admin/internal/config"
	"wallet_admin/internal/domain"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates an email sender, or returns nil when SMTP_HOST is unset
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	if cfg.SMTPHost == "" {
		return nil
	}
	s := &Sender{cfg: cfg, logger: logger}
	s.send = func(e *email.Email) error {
		addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
		var auth smtp.Auth
		if cfg.SMTPUsername != "" {
			auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
		}
		return e.Send(addr, auth)
	}
	return s
}

// TicketResolved tells the ticket's author that support closed it.
// A nil Sender or a ticket without an email address sends nothing.
func (s *Sender) TicketResolved(ticket *domain.SupportTicket) error {
	if s == nil || ticket == nil || ticket.Email == "" {
		return nil
	}
	e := email.NewEmail()
	e.From = s.cfg.SMTPSender
	e.To = []string{ticket.Email}
	e.Subject = fmt.Sprintf("Your support request has been resolved: %s", ticket.Subject)

	body := "Hello,\n\n"
	body += fmt.Sprintf(
		"Your support ticket %q (reference %s) has been marked as resolved.\n"+
			"If the problem persists, reply to this email or open a new ticket.\n",
		ticket.Subject, ticket.ID,
	)
	body += "\nBest regards,\nSupport Team"
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send resolution email to %s: %v", ticket.Email, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", ticket.Email, e.Subject)
	return nil
}
