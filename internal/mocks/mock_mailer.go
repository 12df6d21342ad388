package mocks

import (
	"sync"

	"github.com/glodetung92/ECSite/domain"
)

// MockMailer implements domain.Mailer interface for testing. It records
// deliveries so tests can assert on the raw token handed to the
// out-of-band channel.
type MockMailer struct {
	SendPasswordResetFunc func(to, rawToken string) error

	mu         sync.Mutex
	Deliveries []MailDelivery
}

type MailDelivery struct {
	To       string
	RawToken string
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendPasswordReset(to, rawToken string) error {
	m.mu.Lock()
	m.Deliveries = append(m.Deliveries, MailDelivery{To: to, RawToken: rawToken})
	m.mu.Unlock()

	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(to, rawToken)
	}
	// Default behavior: success (nothing actually sent in tests)
	return nil
}

// LastDelivery returns the most recent recorded delivery, if any.
func (m *MockMailer) LastDelivery() (MailDelivery, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Deliveries) == 0 {
		return MailDelivery{}, false
	}
	return m.Deliveries[len(m.Deliveries)-1], true
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
