package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glodetung92/ECSite/domain"
	"github.com/glodetung92/ECSite/internal/config"
	"github.com/glodetung92/ECSite/internal/infrastructure/auth"
	"github.com/glodetung92/ECSite/internal/infrastructure/database"
	"github.com/glodetung92/ECSite/internal/infrastructure/notifications"
	"github.com/glodetung92/ECSite/internal/infrastructure/repositories"
	"github.com/glodetung92/ECSite/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	UserRepo domain.UserRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	ResetSvc    domain.ResetTokenService
	Mailer      domain.Mailer
	ThrottleSvc domain.ThrottleService
	PolicySvc   domain.PolicyService
	AuthSvc     domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db

	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}
	c.Casbin = cas

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.UserRepo = repositories.NewUserRepository(db)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL)
	c.ResetSvc = services.NewResetTokenService(c.UserRepo)
	c.Mailer = notifications.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword, cfg.ResetURL, logger)
	c.ThrottleSvc = services.NewThrottleService(c.RedisClient, services.ThrottleConfig{
		LoginLimit:  cfg.LoginLimit,
		ForgotLimit: cfg.ForgotLimit,
		Window:      cfg.ThrottleWindow,
	}, logger)
	c.PolicySvc = services.NewPolicyService(cas.E)
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.ResetSvc, c.Mailer, logger)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
