package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

type Provider string

const (
	SES      Provider = "ses"
	SendGrid Provider = "sendgrid"
	Mock     Provider = "mock"
)

var (
	ErrInvalidProvider       = errors.New("invalid email provider")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrMissingRecipients     = errors.New("no recipients specified")
	ErrMissingSubject        = errors.New("subject is required")
	ErrMissingContent        = errors.New("email content is required")
	ErrProviderNotConfigured = errors.New("email provider not properly configured")
)

type Error struct {
	Operation string
	Provider  Provider
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("email %s via %s: %v", e.Operation, e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(operation string, provider Provider, err error) *Error {
	return &Error{Operation: operation, Provider: provider, Err: err}
}

// Logger takes alternating key value pairs after the message.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
}

type Client interface {
	Send(ctx context.Context, message *Message) error
	Close() error
}

type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

type Config struct {
	Provider    string
	DefaultFrom string

	SESRegion    string
	SESAccessKey string
	SESSecretKey string

	SendGridAPIKey   string
	SendGridFromName string

	MaxRetries int
	RetryDelay time.Duration
}

type Factory struct {
	logger Logger
}

func NewEmailFactory(logger Logger) *Factory {
	return &Factory{logger: logger}
}

// CreateClient builds the client for provider, filling unset retry settings with provider defaults.
func (f *Factory) CreateClient(provider Provider, config *Config) (Client, error) {
	switch provider {
	case SES:
		setDefaults(config, 3, time.Second)
		if config.SESRegion == "" {
			config.SESRegion = "ap-southeast-1"
		}
		client, err := NewSESClient(config, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create SES client: %w", err)
		}
		f.logger.Info("SES email client created", "region", config.SESRegion, "default_from", config.DefaultFrom)
		return client, nil
	case SendGrid:
		setDefaults(config, 3, time.Second)
		client, err := NewSendGridClient(config, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create SendGrid client: %w", err)
		}
		f.logger.Info("SendGrid email client created", "default_from", config.DefaultFrom)
		return client, nil
	case Mock:
		f.logger.Info("Mock email client created")
		return NewMockClient(config, f.logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProvider, provider)
	}
}

func setDefaults(config *Config, retries int, delay time.Duration) {
	if config.MaxRetries == 0 {
		config.MaxRetries = retries
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = delay
	}
}

func GetClientFromConfig(config *Config, logger Logger) (Client, error) {
	return NewEmailFactory(logger).CreateClient(Provider(config.Provider), config)
}

var addressRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateAddress(address string) error {
	if !addressRegex.MatchString(address) {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, address)
	}
	return nil
}

func validateMessage(message *Message, defaultFrom string) error {
	if len(message.To) == 0 {
		return ErrMissingRecipients
	}
	if message.Subject == "" {
		return ErrMissingSubject
	}
	if message.Text == "" && message.HTML == "" {
		return ErrMissingContent
	}
	if err := ValidateAddress(fromAddress(message.From, defaultFrom)); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	for _, to := range message.To {
		if err := ValidateAddress(to); err != nil {
			return err
		}
	}
	return nil
}

func fromAddress(from, defaultFrom string) string {
	if from == "" {
		return defaultFrom
	}
	return from
}

// withRetry calls send until it succeeds or maxRetries retries are used, backing off linearly.
func withRetry(ctx context.Context, maxRetries int, delay time.Duration, logger Logger, send func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay * time.Duration(attempt)):
			}
		}
		if lastErr = send(); lastErr == nil {
			return nil
		}
		logger.Debug("Email send attempt failed", "attempt", attempt+1, "error", lastErr.Error())
	}
	return lastErr
}
