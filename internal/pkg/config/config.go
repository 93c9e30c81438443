package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Mail     MailConfig
	Geocoder GeocoderConfig
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET, required"`
	JWTExpire     time.Duration `env:"JWT_EXPIRE, default=720h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL, default=10m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=devcamper"`
}

// RedisConfig accepts either REDIS_URL or the discrete address fields.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// MailConfig selects Mailgun when Domain and APIKey are both set; otherwise
// mail is only logged.
type MailConfig struct {
	Domain string `env:"MAILGUN_DOMAIN"`
	APIKey string `env:"MAILGUN_API_KEY"`
	From   string `env:"MAIL_FROM, default=DevCamper <noreply@devcamper.io>"`
}

type GeocoderConfig struct {
	APIKey string `env:"GEOCODER_API_KEY"`
	URL    string `env:"GEOCODER_URL"`
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func (m MailConfig) Enabled() bool { return m.Domain != "" && m.APIKey != "" }

func (g GeocoderConfig) Enabled() bool { return g.APIKey != "" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTExpire <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRE must be positive")
	}
	return &cfg, nil
}
