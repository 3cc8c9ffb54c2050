package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// devSecret is only used when APP_ENV is a development environment and no
// JWT_SECRET is provided. Production startup fails without an explicit secret.
const devSecret = "dev-secret"

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName         string        `env:"APP_NAME" envDefault:"Mesto"`
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	Port            string        `env:"PORT" envDefault:"3001"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	MongoURL        string        `env:"MONGO_URL" envDefault:"mongodb://127.0.0.1:27017"`
	MongoDatabase   string        `env:"MONGO_DB" envDefault:"mestodb"`
	RedisURL        string        `env:"REDIS_URL"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`
	ShutdownPeriod  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
		cfg.JWTSecret = devSecret
	}

	if cfg.MongoURL == "" {
		return Config{}, fmt.Errorf("MONGO_URL must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the configured environment is a development one.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
