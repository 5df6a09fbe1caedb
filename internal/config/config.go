package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"

	StorageLocal = "local"
	StorageS3    = "s3"

	// legacyJWTSecret is the fallback the old deployment shipped with. It is
	// public knowledge and must never sign tokens.
	legacyJWTSecret = "synergy-india-secret-key"
)

type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`

	DBBackend  string `env:"DB_BACKEND" envDefault:"mongo"`
	MongoURL   string `env:"MONGO_URL"`
	DBName     string `env:"DB_NAME" envDefault:"synergy_india"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"admin.db"`

	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresDatabase string `env:"POSTGRES_DATABASE" envDefault:"postgres"`
	PostgresSSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	OptimizeImages bool   `env:"OPTIMIZE_IMAGES" envDefault:"true"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3AccessKey    string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"AWS_SECRET_ACCESS_KEY"`
	S3PublicURL    string `env:"S3_PUBLIC_URL"`

	JWTSecret       string        `env:"JWT_SECRET_KEY"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	// TrustedProxies lists the reverse proxies (IPs or CIDRs) whose
	// X-Forwarded-For headers are believed. Empty means none.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	AccessLogPersist   bool          `env:"ACCESS_LOG_PERSIST" envDefault:"true"`
	AccessLogRetention time.Duration `env:"ACCESS_LOG_RETENTION" envDefault:"720h"`
	PurgeInterval      time.Duration `env:"PURGE_INTERVAL" envDefault:"30m"`

	BootstrapAdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// Load reads an optional .env file and then the process environment, and
// validates the result.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse is Load without validation, for tools that need only part of the
// configuration.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSOrigins = trimList(cfg.CORSOrigins)
	cfg.TrustedProxies = trimList(cfg.TrustedProxies)
	return cfg, nil
}

func (c *Config) Validate() error {
	secret := strings.TrimSpace(c.JWTSecret)
	if secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if secret == legacyJWTSecret {
		return errors.New("JWT_SECRET_KEY must not use the legacy default value")
	}

	if err := c.ValidateDatabase(); err != nil {
		return err
	}

	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" {
			return errors.New("UPLOAD_DIR is required for local storage")
		}
	case StorageS3:
		if c.S3Bucket == "" || c.S3AccessKey == "" || c.S3SecretKey == "" {
			return errors.New("S3_BUCKET, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.RateLimit <= 0 || c.RateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT and RATE_LIMIT_WINDOW must be positive")
	}
	if c.AccessLogRetention > 0 && c.PurgeInterval <= 0 {
		return errors.New("PURGE_INTERVAL must be positive when ACCESS_LOG_RETENTION is set")
	}
	return nil
}

// ValidateDatabase checks only the settings of the selected DB_BACKEND.
func (c *Config) ValidateDatabase() error {
	switch c.DBBackend {
	case BackendMongo:
		if c.MongoURL == "" {
			return errors.New("MONGO_URL is required for the mongo backend")
		}
		if c.DBName == "" {
			return errors.New("DB_NAME is required for the mongo backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" && c.PostgresHost == "" {
			return errors.New("DATABASE_URL or POSTGRES_HOST is required for the postgres backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown DB_BACKEND %q", c.DBBackend)
	}
	return nil
}

// PostgresDSN returns DATABASE_URL when set, otherwise a keyword DSN built
// from the POSTGRES_* variables.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDatabase, c.PostgresSSLMode)
}

func trimList(values []string) []string {
	var out []string
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
