package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"farmsight-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendReminderDigest(ctx context.Context, email, name string, reminders []domain.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	var plain strings.Builder
	var html strings.Builder
	fmt.Fprintf(&plain, "Hello %s,\n\nYour farm reminders for today:\n\n", name)
	fmt.Fprintf(&html, "<html><body><h2>Your farm reminders for today</h2><ul>")
	for _, rem := range reminders {
		fmt.Fprintf(&plain, "- %s\n", rem.Content)
		fmt.Fprintf(&html, "<li>%s</li>", rem.Content)
	}
	plain.WriteString("\nBest regards,\nThe FarmSight Team")
	html.WriteString("</ul></body></html>")

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(name, email)
	message := mail.NewSingleEmail(from, "Today's farm reminders", recipient, plain.String(), html.String())

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
