// Package config builds runtime configuration from the environment so main stays lean.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment names. The null platform bridge with its fixed mock identity is
// only ever constructed when Environment == EnvDevelopment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Server captures top-level service configuration.
type Server struct {
	Addr        string
	Environment string

	// BotToken is the Telegram bot token used to derive the init-data signing
	// secret. When empty, payload verification fails closed.
	BotToken string

	// SessionSigningKey signs the session-cache cookie (HS256).
	SessionSigningKey string
	SessionTTL        time.Duration

	// AccessCheckTimeout bounds a single allow-list round trip. The gate fails
	// closed to unauthorized when the deadline is exceeded.
	AccessCheckTimeout time.Duration

	// AdminTokenHash is the bcrypt hash of the operator token guarding the
	// /admin maintenance routes. Empty disables those routes entirely.
	AdminTokenHash string

	ShowcaseDomain string

	Database Database
	Redis    Redis
	S3       S3
}

// Database holds connection pool configuration.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Redis holds session-cache backend configuration. An empty URL selects the
// in-memory cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// S3 holds object storage configuration for image uploads.
type S3 struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	MaxUploadSize int64
}

// FromEnv builds a Server config from environment variables. A .env file in the
// working directory is applied first when present; real environment variables win.
func FromEnv() Server {
	_ = godotenv.Load()

	cfg := Server{
		Addr:               envOr("VITRINA_ADDR", ":8080"),
		Environment:        envOr("VITRINA_ENV", EnvProduction),
		BotToken:           os.Getenv("TELEGRAM_BOT_TOKEN"),
		SessionSigningKey:  os.Getenv("SESSION_SIGNING_KEY"),
		SessionTTL:         durationOr("SESSION_TTL", 12*time.Hour),
		AccessCheckTimeout: durationOr("ACCESS_CHECK_TIMEOUT", 3*time.Second),
		AdminTokenHash:     os.Getenv("ADMIN_TOKEN_HASH"),
		ShowcaseDomain:     os.Getenv("SHOWCASE_DOMAIN"),
		Database: Database{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    intOr("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    intOr("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: durationOr("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		S3: S3{
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        envOr("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
			MaxUploadSize: int64(intOr("UPLOAD_MAX_BYTES", 10<<20)),
		},
	}
	return cfg
}

// IsDevelopment reports whether the runtime is flagged as a development environment.
func (s Server) IsDevelopment() bool {
	return s.Environment == EnvDevelopment
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
