package email

import (
	"context"
	"sync"
)

// MockClient records messages instead of sending them.
type MockClient struct {
	config *Config
	logger Logger

	mu   sync.RWMutex
	sent []*Message
	fail error
}

func NewMockClient(config *Config, logger Logger) *MockClient {
	return &MockClient{config: config, logger: logger}
}

func (m *MockClient) Send(ctx context.Context, message *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateMessage(message, m.config.DefaultFrom); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return NewError("send", Mock, m.fail)
	}
	m.sent = append(m.sent, message)
	m.logger.Debug("Mock email recorded", "to", message.To, "subject", message.Subject)
	return nil
}

func (m *MockClient) Close() error {
	return nil
}

// FailWith makes every following Send return err. A nil err restores normal behaviour.
func (m *MockClient) FailWith(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}

func (m *MockClient) Sent() []*Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Message, len(m.sent))
	copy(out, m.sent)
	return out
}
