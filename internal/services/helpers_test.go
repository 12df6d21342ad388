package services

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/glodetung92/ECSite/domain"
	"github.com/glodetung92/ECSite/internal/mocks"
)

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	resetSvc domain.ResetTokenService,
	mailer domain.Mailer) domain.AuthService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if resetSvc == nil {
		resetSvc = mocks.NewMockResetTokenService()
	}
	if mailer == nil {
		mailer = mocks.NewMockMailer()
	}

	return NewAuthService(userRepo, passwordSvc, tokenSvc, resetSvc, mailer, zap.NewNop())
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleCustomer,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}
