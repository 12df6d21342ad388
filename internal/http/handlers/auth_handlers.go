package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glodetung92/ECSite/domain"
	"github.com/glodetung92/ECSite/internal/services"
)

// User-facing messages. The forgot and reset failure wording is shared
// with the success wording where the original design demands it, so a
// probing client learns nothing about which accounts exist.
const (
	msgResetLinkSent  = "If a matching account exists, a password reset link has been sent."
	msgResetDone      = "Password has been successfully reset."
	msgResetInvalid   = "Password reset token is invalid or has expired."
	msgEmailConflict  = "User with this email already exists"
	msgTooManyForgots = "Too many reset requests, try again later"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc     domain.AuthService
	userRepo    domain.UserRepository
	throttleSvc domain.ThrottleService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, userRepo domain.UserRepository, throttleSvc domain.ThrottleService) *AuthHandlers {
	return &AuthHandlers{
		authSvc:     authSvc,
		userRepo:    userRepo,
		throttleSvc: throttleSvc,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// ForgotPasswordRequest represents a reset token request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a reset token consumption
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": msgEmailConflict})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": domain.NewUserView(user)})
}

// Login issues a session token. The password guard has already
// validated the credentials and put the user in the context.
func (h *AuthHandlers) Login(c *gin.Context) {
	value, exists := c.Get("auth_user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	user := value.(*domain.User)

	result, err := h.authSvc.Login(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
			"user":         result.User,
		},
	})
}

// ForgotPassword issues a reset token and hands it to the delivery
// channel. The response never carries the token.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed, err := h.throttleSvc.Allow(c.Request.Context(), services.ThrottleForgot, req.Email)
	if err == nil && !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msgTooManyForgots})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if err == domain.ErrInvalidResetToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgResetInvalid})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process reset request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": msgResetLinkSent}})
}

// ResetPassword consumes a reset token and sets a new password
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if err == domain.ErrInvalidResetToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgResetInvalid})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": msgResetDone}})
}

// Profile returns the authenticated user (requires the token guard)
func (h *AuthHandlers) Profile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID.(uint))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": domain.NewUserView(user)})
}

// ListUsers returns every account as views (admin only, enforced by
// the policy middleware)
func (h *AuthHandlers) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	views := make([]*domain.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, domain.NewUserView(user))
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}
