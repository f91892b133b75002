package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentdesk-backend/internal/logger"
)

// mailSender is the subset of the SendGrid client the email service uses.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	client   mailSender
	from     string
	fromName string
}

// NewEmailService returns an EmailService backed by SendGrid. With an empty
// API key messages are logged and dropped.
func NewEmailService(apiKey, from, fromName string) EmailService {
	s := &emailService{from: from, fromName: fromName}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name string, rentalID int32, dueDate, balance string) error {
	subject := fmt.Sprintf("Rental #%d is overdue", rentalID)
	body := fmt.Sprintf("Hello %s,\n\nYour rental #%d was due back on %s and has not been returned yet.", name, rentalID, dueDate)
	if balance != "" {
		body += fmt.Sprintf("\n\nOutstanding balance: %s", balance)
	}
	body += "\n\nPlease return the equipment or contact us to extend the rental.\n\nThank you."

	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, body string) error {
	if s.client == nil {
		logger.Warn("Email delivery disabled, dropping message", "to", toEmail, "subject", subject)
		return nil
	}

	msg := mail.NewSingleEmailPlainText(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail(toName, toEmail),
		body,
	)

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail)
	resp, err := s.client.SendWithContext(ctx, msg)
	if err == nil && resp.StatusCode >= 300 {
		err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	return nil
}
