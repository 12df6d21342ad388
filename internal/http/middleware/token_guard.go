package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glodetung92/ECSite/domain"
)

// TokenGuard authenticates requests by session token. It is one of the
// two authenticators gating requests; the other is PasswordGuard.
type TokenGuard struct {
	tokenSvc domain.TokenService
}

// NewTokenGuard creates a new token guard
func NewTokenGuard(tokenSvc domain.TokenService) *TokenGuard {
	return &TokenGuard{tokenSvc: tokenSvc}
}

// Authenticate returns middleware that verifies the Bearer token and
// stows the authenticated identity in the request context.
func (g *TokenGuard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := g.tokenSvc.ValidateSessionToken(tokenParts[1])
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}
