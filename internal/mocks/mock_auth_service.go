package mocks

import (
	"context"

	"github.com/glodetung92/ECSite/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc            func(ctx context.Context, email, name, password string) (*domain.User, error)
	ValidateCredentialsFunc func(ctx context.Context, email, password string) (*domain.User, error)
	LoginFunc               func(ctx context.Context, user *domain.User) (*domain.AuthResult, error)
	ForgotPasswordFunc      func(ctx context.Context, email string) error
	ResetPasswordFunc       func(ctx context.Context, rawToken, newPassword string) error
	GetProfileFunc          func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, name, password)
	}
	return &domain.User{ID: 1, Email: email, Name: name, Role: domain.RoleCustomer}, nil
}

func (m *MockAuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	if m.ValidateCredentialsFunc != nil {
		return m.ValidateCredentialsFunc(ctx, email, password)
	}
	// Default behavior: rejected
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Login(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, user)
	}
	return &domain.AuthResult{
		User:        domain.NewUserView(user),
		AccessToken: "session_token",
		ExpiresIn:   3600,
	}, nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, rawToken, newPassword)
	}
	return nil
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
