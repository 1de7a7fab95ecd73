package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridClient struct {
	client *sendgrid.Client
	config *Config
	logger Logger
}

func NewSendGridClient(config *Config, logger Logger) (*SendGridClient, error) {
	if config.SendGridAPIKey == "" {
		return nil, NewError("create_client", SendGrid, ErrProviderNotConfigured)
	}
	return &SendGridClient{
		client: sendgrid.NewSendClient(config.SendGridAPIKey),
		config: config,
		logger: logger,
	}, nil
}

func (sg *SendGridClient) Send(ctx context.Context, message *Message) error {
	if err := validateMessage(message, sg.config.DefaultFrom); err != nil {
		return err
	}

	sgMessage := sg.buildMessage(message)
	err := withRetry(ctx, sg.config.MaxRetries, sg.config.RetryDelay, sg.logger, func() error {
		response, err := sg.client.SendWithContext(ctx, sgMessage)
		if err != nil {
			return err
		}
		if response.StatusCode < 200 || response.StatusCode >= 300 {
			return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
		}
		return nil
	})
	if err != nil {
		return NewError("send", SendGrid, err)
	}

	sg.logger.Debug("Email sent via SendGrid", "to", message.To, "subject", message.Subject)
	return nil
}

func (sg *SendGridClient) Close() error {
	return nil
}

func (sg *SendGridClient) buildMessage(message *Message) *mail.SGMailV3 {
	sgMessage := mail.NewV3Mail()
	sgMessage.SetFrom(mail.NewEmail(sg.config.SendGridFromName, fromAddress(message.From, sg.config.DefaultFrom)))
	sgMessage.Subject = message.Subject

	personalization := mail.NewPersonalization()
	for _, to := range message.To {
		personalization.AddTos(mail.NewEmail("", to))
	}
	for _, cc := range message.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}
	sgMessage.AddPersonalizations(personalization)

	if message.Text != "" {
		sgMessage.AddContent(mail.NewContent("text/plain", message.Text))
	}
	if message.HTML != "" {
		sgMessage.AddContent(mail.NewContent("text/html", message.HTML))
	}
	if message.ReplyTo != "" {
		sgMessage.SetReplyTo(mail.NewEmail("", message.ReplyTo))
	}
	return sgMessage
}
