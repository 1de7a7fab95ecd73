package email

import (
	"context"
	"errors"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		wantErr error
	}{
		{"valid", &Message{To: []string{"a@dinas.go.id"}, Subject: "s", Text: "t"}, nil},
		{"no recipients", &Message{Subject: "s", Text: "t"}, ErrMissingRecipients},
		{"no subject", &Message{To: []string{"a@dinas.go.id"}, Text: "t"}, ErrMissingSubject},
		{"no body", &Message{To: []string{"a@dinas.go.id"}, Subject: "s"}, ErrMissingContent},
		{"bad recipient", &Message{To: []string{"nope"}, Subject: "s", HTML: "<p>x</p>"}, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMessage(tt.msg, "noreply@dinas.go.id")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateMessage() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFactoryCreateClient(t *testing.T) {
	f := NewEmailFactory(nopLogger{})

	if _, err := f.CreateClient("smtp", &Config{}); !errors.Is(err, ErrInvalidProvider) {
		t.Errorf("unknown provider error = %v", err)
	}
	if _, err := f.CreateClient(SendGrid, &Config{}); !errors.Is(err, ErrProviderNotConfigured) {
		t.Errorf("sendgrid without key error = %v", err)
	}
	if _, err := f.CreateClient(SES, &Config{}); !errors.Is(err, ErrProviderNotConfigured) {
		t.Errorf("ses without credentials error = %v", err)
	}

	client, err := f.CreateClient(Mock, &Config{DefaultFrom: "noreply@dinas.go.id"})
	if err != nil {
		t.Fatalf("mock client: %v", err)
	}
	if _, ok := client.(*MockClient); !ok {
		t.Errorf("mock provider returned %T", client)
	}
}

func TestMockClientRecordsAndFails(t *testing.T) {
	m := NewMockClient(&Config{DefaultFrom: "noreply@dinas.go.id"}, nopLogger{})
	msg := &Message{To: []string{"kabid@dinas.go.id"}, Subject: "Disposisi", Text: "x"}

	if err := m.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got := len(m.Sent()); got != 1 {
		t.Fatalf("Sent() len = %d, want 1", got)
	}

	boom := errors.New("boom")
	m.FailWith(boom)
	if err := m.Send(context.Background(), msg); !errors.Is(err, boom) {
		t.Errorf("Send() after FailWith = %v", err)
	}
	if got := len(m.Sent()); got != 1 {
		t.Errorf("failed send was recorded, len = %d", got)
	}
}

func TestWithRetry(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 2, time.Millisecond, nopLogger{}, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("withRetry() err = %v calls = %d, want nil and 3", err, calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = withRetry(ctx, 3, time.Hour, nopLogger{}, func() error { return errors.New("down") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("withRetry() on cancelled ctx = %v", err)
	}
}
