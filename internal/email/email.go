package email

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/travelbook/config"
	mailjet "github.com/mailjet/mailjet-apiv3-go"
)

// Sender delivers transactional mail. Password-reset requests fail outright
// when Send fails, so implementations must return delivery errors rather than
// swallow them.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type MailjetSender struct {
	client    *mailjet.Client
	fromEmail string
	fromName  string
}

func NewMailjetSender(cfg config.EmailConfig) *MailjetSender {
	return &MailjetSender{
		client:    mailjet.NewMailjetClient(cfg.MailjetAPIKey, cfg.MailjetSecretKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *MailjetSender) Send(ctx context.Context, to, subject, body string) error {
	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: s.fromEmail,
					Name:  s.fromName,
				},
				To: &mailjet.RecipientsV31{
					mailjet.RecipientV31{Email: to},
				},
				Subject:  subject,
				TextPart: body,
			},
		},
	}
	if _, err := s.client.SendMailV31(&messages); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogSender writes mail to the log instead of delivering it. Used in
// development and wherever mailjet credentials are absent.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("email to %s: %s: %s", to, subject, body)
	return nil
}
