package mocks

import (
	"context"

	"github.com/glodetung92/ECSite/domain"
)

// MockResetTokenService implements domain.ResetTokenService interface for testing
type MockResetTokenService struct {
	IssueFunc    func(ctx context.Context, user *domain.User) (string, error)
	ValidateFunc func(ctx context.Context, rawToken string) (*domain.User, error)
}

// NewMockResetTokenService creates a new MockResetTokenService with default behaviors
func NewMockResetTokenService() *MockResetTokenService {
	return &MockResetTokenService{}
}

func (m *MockResetTokenService) Issue(ctx context.Context, user *domain.User) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user)
	}
	// Default behavior: fixed fake token
	return "raw_reset_token", nil
}

func (m *MockResetTokenService) Validate(ctx context.Context, rawToken string) (*domain.User, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, rawToken)
	}
	// Default behavior: invalid
	return nil, domain.ErrInvalidResetToken
}

// Compile-time interface compliance verification
var _ domain.ResetTokenService = (*MockResetTokenService)(nil)
