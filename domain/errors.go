package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
)

// Password reset errors. A forgot-password request for an unknown email
// and a reset attempt with a bad or expired token both surface
// ErrInvalidResetToken so callers cannot probe which accounts exist.
var (
	ErrInvalidResetToken = errors.New("password reset token is invalid or has expired")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Rate limiting errors
var (
	ErrTooManyRequests = errors.New("too many requests")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)
