package mocks

import (
	"context"
	"time"

	"github.com/glodetung92/ECSite/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.User, error)
	FindByResetDigestFunc func(ctx context.Context, digest string) (*domain.User, error)
	ListFunc              func(ctx context.Context) ([]*domain.User, error)
	UpdateFunc            func(ctx context.Context, user *domain.User) error
	SetResetTokenFunc     func(ctx context.Context, userID uint, digest string, expiresAt time.Time) error
	ResetPasswordFunc     func(ctx context.Context, userID uint, digest, newHash string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success, store-defaulted role
	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByResetDigest(ctx context.Context, digest string) (*domain.User, error) {
	if m.FindByResetDigestFunc != nil {
		return m.FindByResetDigestFunc(ctx, digest)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	// Default behavior: empty listing
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID uint, digest string, expiresAt time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, userID, digest, expiresAt)
	}
	// Default behavior: success
	return nil
}

func (m *MockUserRepository) ResetPassword(ctx context.Context, userID uint, digest, newHash string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, userID, digest, newHash)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
