package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/glodetung92/ECSite/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	resetSvc    domain.ResetTokenService
	mailer      domain.Mailer
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	resetSvc domain.ResetTokenService,
	mailer domain.Mailer,
	logger *zap.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		resetSvc:    resetSvc,
		mailer:      mailer,
		logger:      logger,
	}
}

// Register implements domain.AuthService. The role is defaulted by the
// store; callers cannot choose it.
func (s *AuthServiceImpl) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index catches a registration that raced the
		// existence check above.
		if err == domain.ErrEmailTaken {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// ValidateCredentials implements domain.AuthService. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login implements domain.AuthService. It never re-checks the
// password: the caller's password guard has already validated the
// credentials.
func (s *AuthServiceImpl) Login(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &domain.AuthResult{
		User:        domain.NewUserView(user),
		AccessToken: accessToken,
		ExpiresIn:   int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// ForgotPassword implements domain.AuthService. An unknown email fails
// with the same sentinel as an invalid token, so the endpoint cannot be
// used to probe which accounts exist. The raw token goes only to the
// delivery channel, never into a response or a log line.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrInvalidResetToken
	}

	rawToken, err := s.resetSvc.Issue(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(user.Email, rawToken); err != nil {
		return fmt.Errorf("failed to deliver reset token: %w", err)
	}

	s.logger.Info("password reset issued", zap.Uint("user_id", user.ID))
	return nil
}

// ResetPassword implements domain.AuthService. Validation and
// consumption are separate: the token is cleared atomically with the
// password update, so of two racing resets only one can win.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	user, err := s.resetSvc.Validate(ctx, rawToken)
	if err != nil {
		return domain.ErrInvalidResetToken
	}

	newHash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ResetPassword(ctx, user.ID, DigestToken(rawToken), newHash); err != nil {
		return err
	}

	s.logger.Info("password reset completed", zap.Uint("user_id", user.ID))
	return nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
