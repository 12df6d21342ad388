package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/glodetung92/ECSite/domain"
	"github.com/glodetung92/ECSite/internal/mocks"
)

func TestResetTokenServiceImpl_Issue(t *testing.T) {
	user := &domain.User{ID: 7, Email: "a@x.com"}

	t.Run("issues a 64-char hex token and stores only its digest", func(t *testing.T) {
		var storedUserID uint
		var storedDigest string
		var storedExpiry time.Time

		userRepo := mocks.NewMockUserRepository()
		userRepo.SetResetTokenFunc = func(ctx context.Context, userID uint, digest string, expiresAt time.Time) error {
			storedUserID, storedDigest, storedExpiry = userID, digest, expiresAt
			return nil
		}

		svc := NewResetTokenService(userRepo)
		before := time.Now()
		raw, err := svc.Issue(context.Background(), user)
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}

		if matched, _ := regexp.MatchString("^[0-9a-f]{64}$", raw); !matched {
			t.Errorf("expected 64 lowercase hex chars, got %q", raw)
		}
		if storedUserID != user.ID {
			t.Errorf("expected token stored for user %d, got %d", user.ID, storedUserID)
		}

		sum := sha256.Sum256([]byte(raw))
		if storedDigest != hex.EncodeToString(sum[:]) {
			t.Error("stored digest must be the sha256 of the raw token")
		}
		if storedDigest == raw {
			t.Error("raw token must never be persisted")
		}

		window := storedExpiry.Sub(before)
		if window < 9*time.Minute || window > 11*time.Minute {
			t.Errorf("expected roughly 10 minute expiry window, got %v", window)
		}
	})

	t.Run("tokens are unique per issuance", func(t *testing.T) {
		svc := NewResetTokenService(mocks.NewMockUserRepository())

		first, err := svc.Issue(context.Background(), user)
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		second, err := svc.Issue(context.Background(), user)
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if first == second {
			t.Error("two issued tokens must differ")
		}
	})

	t.Run("store failure", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.SetResetTokenFunc = func(ctx context.Context, userID uint, digest string, expiresAt time.Time) error {
			return errors.New("database error")
		}

		svc := NewResetTokenService(userRepo)
		if _, err := svc.Issue(context.Background(), user); err == nil {
			t.Error("expected error when the digest cannot be stored")
		}
	})
}

func TestResetTokenServiceImpl_Validate(t *testing.T) {
	raw := "4ece0e6297549c8a8db5194c1a8eb1e443f180d459b945794f7400ba19d9536b"

	userWithExpiry := func(expiresAt *time.Time) *domain.User {
		digest := DigestToken(raw)
		return &domain.User{
			ID:               7,
			Email:            "a@x.com",
			ResetTokenDigest: &digest,
			ResetExpiresAt:   expiresAt,
		}
	}

	tests := []struct {
		name          string
		rawToken      string
		setupMocks    func(*mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "valid inside the window",
			rawToken: raw,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				// As seen one minute before expiry, i.e. nine minutes
				// after issuance of a ten minute token.
				expires := time.Now().Add(time.Minute)
				userRepo.FindByResetDigestFunc = func(ctx context.Context, digest string) (*domain.User, error) {
					if digest == DigestToken(raw) {
						return userWithExpiry(&expires), nil
					}
					return nil, domain.ErrUserNotFound
				}
			},
			expectedError: nil,
		},
		{
			name:     "expired",
			rawToken: raw,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				// One minute past expiry, i.e. eleven minutes after
				// issuance.
				expires := time.Now().Add(-time.Minute)
				userRepo.FindByResetDigestFunc = func(ctx context.Context, digest string) (*domain.User, error) {
					return userWithExpiry(&expires), nil
				}
			},
			expectedError: domain.ErrInvalidResetToken,
		},
		{
			name:     "digest present but expiry missing",
			rawToken: raw,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByResetDigestFunc = func(ctx context.Context, digest string) (*domain.User, error) {
					return userWithExpiry(nil), nil
				}
			},
			expectedError: domain.ErrInvalidResetToken,
		},
		{
			name:          "no matching digest",
			rawToken:      "some-garbage-token",
			setupMocks:    func(userRepo *mocks.MockUserRepository) {},
			expectedError: domain.ErrInvalidResetToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)

			svc := NewResetTokenService(userRepo)
			user, err := svc.Validate(context.Background(), tt.rawToken)

			if !errors.Is(err, tt.expectedError) && (err == nil) != (tt.expectedError == nil) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if tt.expectedError == nil && user == nil {
				t.Error("expected user for a valid token")
			}
		})
	}
}

// Validate must not consume the token: a validated-but-unused token
// stays live until expiry or consumption.
func TestResetTokenServiceImpl_ValidateDoesNotConsume(t *testing.T) {
	raw := "4ece0e6297549c8a8db5194c1a8eb1e443f180d459b945794f7400ba19d9536b"
	digest := DigestToken(raw)
	expires := time.Now().Add(5 * time.Minute)

	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByResetDigestFunc = func(ctx context.Context, d string) (*domain.User, error) {
		return &domain.User{ID: 7, ResetTokenDigest: &digest, ResetExpiresAt: &expires}, nil
	}
	userRepo.SetResetTokenFunc = func(ctx context.Context, userID uint, digest string, expiresAt time.Time) error {
		t.Error("validate must not write reset state")
		return nil
	}
	userRepo.ResetPasswordFunc = func(ctx context.Context, userID uint, digest, newHash string) error {
		t.Error("validate must not consume the token")
		return nil
	}

	svc := NewResetTokenService(userRepo)
	for i := 0; i < 2; i++ {
		if _, err := svc.Validate(context.Background(), raw); err != nil {
			t.Fatalf("validation %d failed: %v", i+1, err)
		}
	}
}

func TestDigestToken(t *testing.T) {
	if DigestToken("abc") != DigestToken("abc") {
		t.Error("digest must be deterministic")
	}
	if DigestToken("abc") == DigestToken("abd") {
		t.Error("different tokens must have different digests")
	}
	if len(DigestToken("abc")) != 64 {
		t.Error("sha256 hex digest must be 64 chars")
	}
}
