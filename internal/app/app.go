package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glodetung92/ECSite/domain"
	"github.com/glodetung92/ECSite/internal/config"
	httpx "github.com/glodetung92/ECSite/internal/http"
	"github.com/glodetung92/ECSite/internal/http/handlers"
	"github.com/glodetung92/ECSite/internal/http/middleware"
)

func Run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		// Throttling fails open without Redis; the service still runs.
		logger.Warn("redis unreachable, request throttling disabled", zap.Error(err))
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.UserRepo, c.ThrottleSvc)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)

	tokenGuard := middleware.NewTokenGuard(c.TokenSvc)
	passwordGuard := middleware.NewPasswordGuard(c.AuthSvc, c.ThrottleSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(authH, polH, tokenGuard, passwordGuard, casbinMW)

	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) == 0 {
		c.Casbin.E.AddPolicy(domain.RoleAdmin, "/admin/users", "GET")
		c.Casbin.E.AddPolicy(domain.RoleAdmin, "/admin/policies", "(GET|POST|DELETE)")
		_ = c.Casbin.E.SavePolicy()
		logger.Info("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
