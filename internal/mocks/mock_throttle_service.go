package mocks

import (
	"context"

	"github.com/glodetung92/ECSite/domain"
)

// MockThrottleService implements domain.ThrottleService interface for testing
type MockThrottleService struct {
	AllowFunc func(ctx context.Context, action, key string) (bool, error)
}

// NewMockThrottleService creates a new MockThrottleService with default behaviors
func NewMockThrottleService() *MockThrottleService {
	return &MockThrottleService{}
}

func (m *MockThrottleService) Allow(ctx context.Context, action, key string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, action, key)
	}
	// Default behavior: never throttled
	return true, nil
}

// Compile-time interface compliance verification
var _ domain.ThrottleService = (*MockThrottleService)(nil)
