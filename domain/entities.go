package domain

import "time"

// User roles. The store defaults new accounts to RoleCustomer.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// User represents an account in the system
type User struct {
	ID           uint
	Email        string
	Name         string
	PasswordHash string `gorm:"column:password"`
	Role         string

	// Password reset state. Both fields are set together when a reset
	// token is issued and cleared together when it is consumed.
	ResetTokenDigest *string
	ResetExpiresAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserView is the external representation of a User. It carries no
// credential material and is the only user shape that crosses the HTTP
// boundary.
type UserView struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserView maps a User to its external view, stripping the password
// hash and reset-token fields.
func NewUserView(u *User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResult represents a successful login
type AuthResult struct {
	User        *UserView
	AccessToken string
	ExpiresIn   int64
}

// TokenClaims represents session token claims
type TokenClaims struct {
	UserID    uint   `json:"sub"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
