package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	GinMode     string `mapstructure:"GIN_MODE"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Connection pool; callers queue once MaxOpenConns is reached
	DBMaxOpenConns int `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int `mapstructure:"DB_MAX_IDLE_CONNS"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	// StrictAdminMutations requires the admin role for per-id update/delete routes,
	// which otherwise only need an authenticated caller.
	StrictAdminMutations bool `mapstructure:"STRICT_ADMIN_MUTATIONS"`

	CORSAllowedOrigin string `mapstructure:"CORS_ALLOWED_ORIGIN"`

	AuthRateLimitPerMinute int `mapstructure:"AUTH_RATE_LIMIT_PER_MINUTE"`
	AuthRateLimitBurst     int `mapstructure:"AUTH_RATE_LIMIT_BURST"`

	// Bootstrap administrator, created when the users table is empty
	AdminName     string `mapstructure:"ADMIN_NAME"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Email Configuration. An empty SMTPHost disables outgoing mail.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	FromEmail    string `mapstructure:"FROM_EMAIL"`
	FromName     string `mapstructure:"FROM_NAME"`
}

// Development fallbacks. Release mode refuses to start with either of them.
const (
	DefaultJWTSecret     = "your-secret-key"
	DefaultAdminPassword = "admin123"
)

var keys = []string{
	"PORT", "GIN_MODE", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"JWT_SECRET", "JWT_TTL", "STRICT_ADMIN_MUTATIONS",
	"CORS_ALLOWED_ORIGIN", "AUTH_RATE_LIMIT_PER_MINUTE", "AUTH_RATE_LIMIT_BURST",
	"ADMIN_NAME", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "FROM_EMAIL", "FROM_NAME",
}

// Load reads the configuration from the environment, after loading an optional .env
// file from the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DATABASE_URL", "user:password@tcp(localhost:3306)/motodealer?charset=utf8mb4&parseTime=True&loc=UTC")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("STRICT_ADMIN_MUTATIONS", false)
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("AUTH_RATE_LIMIT_PER_MINUTE", 30)
	v.SetDefault("AUTH_RATE_LIMIT_BURST", 10)
	v.SetDefault("ADMIN_NAME", "Administrator")
	v.SetDefault("ADMIN_EMAIL", "admin@motodealer.local")
	v.SetDefault("ADMIN_PASSWORD", DefaultAdminPassword)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 2525)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("FROM_EMAIL", "noreply@motodealer.local")
	v.SetDefault("FROM_NAME", "MotoDealer")

	// AutomaticEnv alone is not consulted by Unmarshal
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.AuthRateLimitPerMinute <= 0 || c.AuthRateLimitBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE and AUTH_RATE_LIMIT_BURST must be positive, got %d and %d",
			c.AuthRateLimitPerMinute, c.AuthRateLimitBurst)
	}
	if c.IsRelease() {
		if c.JWTSecret == DefaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the development default in release mode")
		}
		if c.AdminPassword == DefaultAdminPassword {
			return errors.New("ADMIN_PASSWORD must be changed from the development default in release mode")
		}
	}
	return nil
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}
