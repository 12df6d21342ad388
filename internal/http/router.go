package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/glodetung92/ECSite/internal/http/handlers"
	"github.com/glodetung92/ECSite/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ph *handlers.PolicyHandlers, tokenGuard *middleware.TokenGuard, passwordGuard *middleware.PasswordGuard, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", passwordGuard.Authenticate(), ah.Login)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.GET("/profile", tokenGuard.Authenticate(), ah.Profile)

	adm := r.Group("/admin").Use(tokenGuard.Authenticate(), cb.Enforce())
	adm.GET("/users", ah.ListUsers)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
