package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/glodetung92/ECSite/domain"
)

const (
	// resetTokenBytes of entropy, hex-encoded to 64 characters.
	resetTokenBytes = 32
	resetTokenTTL   = 10 * time.Minute
)

// DigestToken computes the irreversible digest under which a raw reset
// token is stored and looked up.
func DigestToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ResetTokenServiceImpl implements domain.ResetTokenService. Only the
// digest of a token is ever persisted; the raw value exists in memory
// just long enough to hand to the delivery channel.
type ResetTokenServiceImpl struct {
	userRepo domain.UserRepository
}

// NewResetTokenService creates a new reset token service
func NewResetTokenService(userRepo domain.UserRepository) domain.ResetTokenService {
	return &ResetTokenServiceImpl{userRepo: userRepo}
}

// Issue implements domain.ResetTokenService
func (s *ResetTokenServiceImpl) Issue(ctx context.Context, user *domain.User) (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	raw := hex.EncodeToString(buf)

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, DigestToken(raw), expiresAt); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return raw, nil
}

// Validate implements domain.ResetTokenService. It does not consume
// the token; clearing happens atomically with the password update so a
// validated-but-unused token stays valid until expiry or consumption.
func (s *ResetTokenServiceImpl) Validate(ctx context.Context, rawToken string) (*domain.User, error) {
	user, err := s.userRepo.FindByResetDigest(ctx, DigestToken(rawToken))
	if err != nil {
		return nil, domain.ErrInvalidResetToken
	}

	if user.ResetExpiresAt == nil || user.ResetExpiresAt.Before(time.Now()) {
		return nil, domain.ErrInvalidResetToken
	}

	return user, nil
}
