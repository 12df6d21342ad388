package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	// Session lifetime in seconds.
	ExpiresIn int `yaml:"expires_in"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from"`
	Password string `yaml:"password"`
	ResetURL string `yaml:"reset_url"`
}

type ThrottleConfig struct {
	LoginLimit  int    `yaml:"login_limit"`
	ForgotLimit int    `yaml:"forgot_limit"`
	Window      string `yaml:"window"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Throttle ThrottleConfig `yaml:"throttle"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port    string
	GinMode string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPPassword string
	ResetURL     string

	LoginLimit     int
	ForgotLimit    int
	ThrottleWindow time.Duration

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, applies environment overrides and
// validates everything the process needs to start. Signing secret and
// session expiry are hard requirements: a missing or unparsable value
// is a startup failure, never a per-request one.
func Load() (*Config, error) {
	// A missing .env file is fine; explicit environment wins either way.
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	secret := env("JWT_SECRET", configFile.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required and must not be empty")
	}

	expiresIn := configFile.JWT.ExpiresIn
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		expiresIn, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", v, err)
		}
	}
	if expiresIn <= 0 {
		return nil, fmt.Errorf("jwt expires_in must be a positive number of seconds, got %d", expiresIn)
	}

	window, err := time.ParseDuration(configFile.Throttle.Window)
	if err != nil {
		return nil, fmt.Errorf("invalid throttle window: %w", err)
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       secret,
		JWTIssuer:       configFile.JWT.Issuer,
		SessionTTL:      time.Duration(expiresIn) * time.Second,
		SMTPHost:        configFile.SMTP.Host,
		SMTPPort:        configFile.SMTP.Port,
		SMTPFrom:        configFile.SMTP.From,
		SMTPPassword:    env("SMTP_PASSWORD", configFile.SMTP.Password),
		ResetURL:        configFile.SMTP.ResetURL,
		LoginLimit:      configFile.Throttle.LoginLimit,
		ForgotLimit:     configFile.Throttle.ForgotLimit,
		ThrottleWindow:  window,
		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
