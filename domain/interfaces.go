package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByResetDigest(ctx context.Context, digest string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	// SetResetToken stores the reset digest and expiry on the user row.
	SetResetToken(ctx context.Context, userID uint, digest string, expiresAt time.Time) error
	// ResetPassword swaps the password hash and clears the reset fields in
	// a single conditional update. It fails with ErrInvalidResetToken when
	// the stored digest no longer matches, which makes a raced second
	// consumption of the same token lose.
	ResetPassword(ctx context.Context, userID uint, digest, newHash string) error
}

// AuthService defines the credential and session lifecycle
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*User, error)
	ValidateCredentials(ctx context.Context, email, password string) (*User, error)
	Login(ctx context.Context, user *User) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
	GetProfile(ctx context.Context, userID uint) (*User, error)
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines session token operations
type TokenService interface {
	GenerateSessionToken(user *User) (string, error)
	ValidateSessionToken(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// ResetTokenService manages single-use password reset tokens. Issue
// returns the raw token for out-of-band delivery; only its digest is
// persisted. Validate does not consume the token.
type ResetTokenService interface {
	Issue(ctx context.Context, user *User) (string, error)
	Validate(ctx context.Context, rawToken string) (*User, error)
}

// Mailer defines the out-of-band delivery channel for reset tokens
type Mailer interface {
	SendPasswordReset(to, rawToken string) error
}

// ThrottleService limits how often a key may perform an action
type ThrottleService interface {
	Allow(ctx context.Context, action, key string) (bool, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the Casbin enforcer the service uses
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
