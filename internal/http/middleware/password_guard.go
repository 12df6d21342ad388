package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glodetung92/ECSite/domain"
	"github.com/glodetung92/ECSite/internal/services"
)

// LoginRequest represents the credentials bound by the password guard
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordGuard authenticates requests by email and password. The
// login handler behind it receives an already-validated user and never
// sees the password.
type PasswordGuard struct {
	authSvc     domain.AuthService
	throttleSvc domain.ThrottleService
}

// NewPasswordGuard creates a new password guard
func NewPasswordGuard(authSvc domain.AuthService, throttleSvc domain.ThrottleService) *PasswordGuard {
	return &PasswordGuard{authSvc: authSvc, throttleSvc: throttleSvc}
}

// Authenticate returns middleware that validates the login credentials
// and stows the authenticated user in the request context.
func (g *PasswordGuard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		allowed, err := g.throttleSvc.Allow(c.Request.Context(), services.ThrottleLogin, req.Email)
		if err == nil && !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
			c.Abort()
			return
		}

		user, err := g.authSvc.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			// Unknown email and wrong password render identically.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			c.Abort()
			return
		}

		c.Set("auth_user", user)
		c.Next()
	}
}
