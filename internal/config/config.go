package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// OracleType identifies which oracle backend answers medicine questions.
type OracleType string

const (
	OracleGemini  OracleType = "gemini"
	OracleOffline OracleType = "offline"
)

// Common errors
var (
	ErrMissingGeminiKey  = errors.New("GEMINI_API_KEY environment variable is required for the gemini oracle")
	ErrMissingRedisAddr  = errors.New("REDIS_ADDR environment variable is required for the redis session store")
	ErrMissingS3Bucket   = errors.New("S3_BUCKET environment variable is required for the s3 image store")
	ErrInvalidUploadSize = errors.New("MAX_UPLOAD_BYTES must be positive")
)

const (
	DefaultPort           = "5050"
	DefaultDatabaseURL    = "doseright.db"
	DefaultUploadDir      = "static/uploads"
	DefaultUploadPrefix   = "/static/uploads"
	DefaultMaxUploadBytes = 5 * 1024 * 1024
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultAdminPassword  = "admin123"
)

// DefaultAllowedExtensions are the image extensions accepted by /upload.
var DefaultAllowedExtensions = []string{"png", "jpg", "jpeg", "webp"}

// Config holds everything the server needs at start-up.
type Config struct {
	Port        string
	DatabaseURL string

	// Upload settings
	UploadDir         string
	UploadURLPrefix   string
	MaxUploadBytes    int64
	AllowedExtensions []string
	ImageStore        string // "local" or "s3"

	// S3-compatible image store
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string

	// Oracle settings
	Oracle       OracleType
	GeminiAPIKey string
	GeminiModel  string
	Normalizer   string // "full" or "simple"

	// Sessions
	SessionStore  string // "db" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CookieSecure  bool
	SessionTTL    time.Duration
	RememberTTL   time.Duration

	AdminPassword  string
	AuthRatePerMin int
	LogLevel       string
}

// LoadFromEnv loads configuration from environment variables.
//
// Environment variables:
//   - PORT: listen port (default: 5050)
//   - DATABASE_URL: postgres:// DSN or SQLite file path (default: doseright.db)
//   - UPLOAD_DIR, UPLOAD_URL_PREFIX, MAX_UPLOAD_BYTES, ALLOWED_EXTENSIONS
//   - IMAGE_STORE: "local" or "s3" (default: local), S3_BUCKET, S3_REGION, S3_ENDPOINT,
//     S3_ACCESS_KEY, S3_SECRET_KEY, S3_PUBLIC_BASE_URL
//   - ORACLE: "gemini" or "offline" (default: gemini when GEMINI_API_KEY is set)
//   - GEMINI_API_KEY, GEMINI_MODEL (default: gemini-2.5-flash)
//   - NORMALIZER: "full" or "simple" (default: full)
//   - SESSION_STORE: "db" or "redis" (default: db), REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
//   - COOKIE_SECURE: mark session cookies Secure (default: false)
//   - ADMIN_PASSWORD: password of the seeded admin account (default: admin123)
//   - AUTH_RATE_PER_MIN: login/signup attempts per client IP per minute (default: 20)
//   - LOG_LEVEL: debug, info, warn or error (default: info)
func LoadFromEnv() Config {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))

	var oracle OracleType
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ORACLE"))) {
	case "offline":
		oracle = OracleOffline
	case "gemini":
		oracle = OracleGemini
	default:
		if apiKey == "" {
			oracle = OracleOffline
		} else {
			oracle = OracleGemini
		}
	}

	return Config{
		Port:              envOr("PORT", DefaultPort),
		DatabaseURL:       envOr("DATABASE_URL", DefaultDatabaseURL),
		UploadDir:         envOr("UPLOAD_DIR", DefaultUploadDir),
		UploadURLPrefix:   strings.TrimRight(envOr("UPLOAD_URL_PREFIX", DefaultUploadPrefix), "/"),
		MaxUploadBytes:    envInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		AllowedExtensions: envList("ALLOWED_EXTENSIONS", DefaultAllowedExtensions),
		ImageStore:        strings.ToLower(envOr("IMAGE_STORE", "local")),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          envOr("S3_REGION", "auto"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKey:       os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:       os.Getenv("S3_SECRET_KEY"),
		S3PublicBaseURL:   strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),
		Oracle:            oracle,
		GeminiAPIKey:      apiKey,
		GeminiModel:       envOr("GEMINI_MODEL", DefaultGeminiModel),
		Normalizer:        strings.ToLower(envOr("NORMALIZER", "full")),
		SessionStore:      strings.ToLower(envOr("SESSION_STORE", "db")),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           int(envInt64("REDIS_DB", 0)),
		CookieSecure:      envBool("COOKIE_SECURE"),
		SessionTTL:        24 * time.Hour,
		RememberTTL:       30 * 24 * time.Hour,
		AdminPassword:     envOr("ADMIN_PASSWORD", DefaultAdminPassword),
		AuthRatePerMin:    int(envInt64("AUTH_RATE_PER_MIN", 20)),
		LogLevel:          strings.ToLower(envOr("LOG_LEVEL", "info")),
	}
}

// Validate checks that the configuration is usable for the selected backends.
func (c Config) Validate() error {
	if c.Oracle == OracleGemini && c.GeminiAPIKey == "" {
		return ErrMissingGeminiKey
	}
	if c.SessionStore == "redis" && c.RedisAddr == "" {
		return ErrMissingRedisAddr
	}
	if c.ImageStore == "s3" && c.S3Bucket == "" {
		return ErrMissingS3Bucket
	}
	if c.MaxUploadBytes <= 0 {
		return ErrInvalidUploadSize
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func envList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
